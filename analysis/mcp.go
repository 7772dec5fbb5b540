package analysis

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagelens/pagelens/kit"
)

// RegisterMCP registers all analysis tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyze(srv)
	s.registerGetAnalysis(srv)
	s.registerSummary(srv)
	s.registerRecent(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (s *Service) registerAnalyze(srv *mcp.Server) {
	type req struct {
		URL    string `json:"url"`
		Device string `json:"device_type"`
	}

	tool := &mcp.Tool{
		Name:        "pagelens_analyze",
		Description: "Analyze a web page's usability: capture, score and persist a full report",
		InputSchema: inputSchema(map[string]any{
			"url":         map[string]any{"type": "string", "description": "Page URL (http or https)"},
			"device_type": map[string]any{"type": "string", "description": "desktop, tablet or mobile (default desktop)"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Analyze(ctx, p.URL, p.Device)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerGetAnalysis(srv *mcp.Server) {
	type req struct {
		ID string `json:"id"`
	}

	tool := &mcp.Tool{
		Name:        "pagelens_get_analysis",
		Description: "Fetch a stored analysis by ID, including the full report",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Analysis ID"},
		}, []string{"id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Get(ctx, p.ID)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerSummary(srv *mcp.Server) {
	type req struct {
		ID string `json:"id"`
	}

	tool := &mcp.Tool{
		Name:        "pagelens_summary",
		Description: "Digest a stored analysis: tier, strengths, weaknesses and top recommendations",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Analysis ID"},
		}, []string{"id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Summary(ctx, p.ID)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerRecent(srv *mcp.Server) {
	type req struct {
		Limit int `json:"limit"`
	}

	tool := &mcp.Tool{
		Name:        "pagelens_recent",
		Description: "List recent analyses, newest first",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Maximum rows to return"},
		}, nil),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Recent(ctx, p.Limit)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
