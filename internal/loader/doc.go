// Package loader reads source images from disk for the MCP server.
//
// Files are read whole and cached by path, since every shrink works on a
// complete in-memory buffer. Cache is safe for concurrent use.
package loader
