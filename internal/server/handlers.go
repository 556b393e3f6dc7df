package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/shrink-png/internal/loader"
	"github.com/ironsheep/shrink-png/internal/shrink"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "png_info", "png_shrink").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "png_info":
		return s.handlePNGInfo(args)
	case "png_plan":
		return s.handlePNGPlan(args)
	case "png_shrink":
		return s.handlePNGShrink(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pngInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePNGInfo(args json.RawMessage) (interface{}, error) {
	var a pngInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return loader.LoadImageInfo(s.cache, a.Path)
}

type pngPlanArgs struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

// PlanResult is the target size computed by png_plan.
type PlanResult struct {
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Resized bool `json:"resized"`
}

func (s *Server) handlePNGPlan(args json.RawMessage) (interface{}, error) {
	var a pngPlanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	dims, err := shrink.Plan(a.Width, a.Height, a.MaxWidth, a.MaxHeight)
	if err != nil {
		return nil, err
	}
	return &PlanResult{
		Width:   dims.Width,
		Height:  dims.Height,
		Resized: dims.Width != a.Width || dims.Height != a.Height,
	}, nil
}

type pngShrinkArgs struct {
	Path       string `json:"path"`
	MaxWidth   int    `json:"max_width"`
	MaxHeight  int    `json:"max_height"`
	OutputPath string `json:"output_path"`
}

// ShrinkResult describes the image produced by png_shrink.
type ShrinkResult struct {
	SourceWidth  int                `json:"source_width"`
	SourceHeight int                `json:"source_height"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	ColorFormat  shrink.PixelFormat `json:"color_format"`
	BitDepth     int                `json:"bit_depth"`
	SizeBytes    int                `json:"size_bytes"`
	OutputPath   string             `json:"output_path,omitempty"`
	ImageBase64  string             `json:"image_base64,omitempty"`
	MimeType     string             `json:"mime_type"`
}

func (s *Server) handlePNGShrink(args json.RawMessage) (interface{}, error) {
	var a pngShrinkArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := shrink.Shrink(data, a.MaxWidth, a.MaxHeight, &shrink.Options{Compression: s.config.Compression})
	if err != nil {
		return nil, err
	}
	s.debugf("shrunk %s from %dx%d to %dx%d", a.Path,
		res.Source.Width, res.Source.Height, res.Target.Width, res.Target.Height)

	out := &ShrinkResult{
		SourceWidth:  res.Source.Width,
		SourceHeight: res.Source.Height,
		Width:        res.Target.Width,
		Height:       res.Target.Height,
		ColorFormat:  res.Format,
		BitDepth:     int(res.Depth),
		SizeBytes:    len(res.Data),
		MimeType:     "image/png",
	}
	if a.OutputPath == "" {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(res.Data)
		return out, nil
	}

	if err := loader.WriteFile(a.OutputPath, res.Data); err != nil {
		return nil, fmt.Errorf("failed to write shrunk image: %w", err)
	}
	// The source may have been overwritten in place.
	s.cache.Evict(a.OutputPath)
	out.OutputPath = a.OutputPath
	return out, nil
}
