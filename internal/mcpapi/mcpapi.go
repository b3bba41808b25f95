// Package mcpapi exposes the pyjs compiler as a single MCP tool so agent
// callers can translate source without shelling out to the CLI.
package mcpapi

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corvidlang/pyjs/internal/compiler"
	"github.com/corvidlang/pyjs/internal/version"
)

// New returns an MCP server exposing the "translate" tool.
func New(name string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version.Version,
	}, nil)

	registerTranslateTool(server)
	return server
}

// Serve runs server on the stdio transport. This call blocks until the
// client disconnects.
func Serve(server *mcp.Server) error {
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

type translateArgs struct {
	Code string `json:"code"`
}

func registerTranslateTool(server *mcp.Server) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "pyjs source text to translate to JavaScript",
			},
		},
		"required": []string{"code"},
	}

	server.AddTool(&mcp.Tool{
		Name:        "translate",
		Description: "Translate pyjs source code into its JavaScript equivalent",
		InputSchema: schema,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args translateArgs
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, err
			}
		}

		javascript, err := compiler.Compile(args.Code)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: javascript}},
		}, nil
	})
}
