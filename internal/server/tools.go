package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "png_info",
			Description: "Read the header of a PNG file: dimensions, color format, bit depth, interlacing, and whether it can be shrunk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PNG file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "png_plan",
			Description: "Compute the size an image of the given dimensions would be shrunk to, without reading any file. Images are never enlarged and keep their aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Source width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Source height in pixels",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width of the bounding box (must be positive)",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height of the bounding box (must be positive)",
					},
				},
				"required": []string{"width", "height", "max_width", "max_height"},
			},
		},
		{
			Name:        "png_shrink",
			Description: "Shrink a PNG image to fit inside a bounding box, keeping its aspect ratio, color format and bit depth. Writes the result to output_path if given, otherwise returns it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source PNG file",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width of the result (must be positive)",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height of the result (must be positive)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the shrunk PNG to",
					},
				},
				"required": []string{"path", "max_width", "max_height"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
