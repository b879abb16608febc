// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/fromusage/fromusage/internal/synth"
)

const toolName = "synthesize_at_caret"

func (app *Application) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve synthesis as an MCP tool over stdio",
		Long: `Starts an MCP server over standard input and output with a single
tool, ` + toolName + `, taking the same positions as synth.

Example:
  $ fromusage mcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.newCreator(ctx)
			if err != nil {
				return err
			}
			defer c.Close()
			return app.newMCPServer(c).Run(ctx, &mcp.StdioTransport{})
		},
	}
}

type synthesizeParams struct {
	Location string `json:"location" jsonschema:"caret position as file.ts:LINE:COL (1-based, byte column) or file.ts:#OFFSET"`
	Inline   bool   `json:"inline,omitempty" jsonschema:"synthesize a value replacing the identifier instead of a declaration"`
	Content  string `json:"content,omitempty" jsonschema:"unsaved contents of the file, if it differs from disk"`
}

func (app *Application) newMCPServer(c *synth.Creator) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "fromusage", Version: version()}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name: toolName,
		Description: `Create a value for an identifier passed as a call argument, from the type
of the parameter it is passed as. Returns a snippet and the range it replaces.`,
	}, app.synthesizeHandler(c))
	return server
}

func (app *Application) synthesizeHandler(c *synth.Creator) mcp.ToolHandlerFor[synthesizeParams, output] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in synthesizeParams) (*mcp.CallToolResult, output, error) {
		loc, err := parseLocation(in.Location)
		if err != nil {
			return nil, output{}, err
		}
		mode := synth.Declaration
		if in.Inline {
			mode = synth.Inline
		}
		var buffer []byte
		if in.Content != "" {
			buffer = []byte(in.Content)
		}
		res, _, err := app.synthesize(ctx, c, loc, mode, buffer)
		if err != nil {
			return nil, output{}, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
		}, newOutput(loc.Path, res), nil
	}
}
