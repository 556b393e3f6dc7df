// Package server implements the MCP (Model Context Protocol) server for PNG shrinking.
//
// This package provides a JSON-RPC 2.0 server that exposes the shrink pipeline
// through the MCP protocol, so MCP-compatible clients can downsize images
// before handling them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - png_info: Read header metadata of a PNG file
//   - png_plan: Compute a shrink target size without touching files
//   - png_shrink: Shrink a PNG to fit a bounding box
//
// # File Caching
//
// Source files are cached by path and reused across tool calls. Writing a
// result over a cached path evicts that entry.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the failing stage
//     (e.g. "unsupported format: bit depth 16")
//
// # Usage
//
//	cfg, err := server.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.NewWithConfig(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
