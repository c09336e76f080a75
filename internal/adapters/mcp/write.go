package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/application/commands"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/ports"
)

// WriterFactory returns the tree writer that recovers files from image
type WriterFactory func(image string) ports.TreeWriter

// RegisterWriteTools adds the tools that write recovered files to the MCP server.
func RegisterWriteTools(s *server.MCPServer, forests *Forests, writers WriterFactory) {
	s.AddTool(undeleteTool(), undeleteHandler(forests, writers))
}

// --- undelete ---

func undeleteTool() mcp.Tool {
	return mcp.NewTool("undelete",
		mcp.WithDescription("Recover the subtree below an inode into a new destination directory. Only fully recoverable files are written."),
		mcp.WithNumber("inode",
			mcp.Description("Inode of the subtree root"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Directory to create; must not exist"),
			mcp.Required(),
		),
		mcp.WithString("from_date",
			mcp.Description("Skip files last modified before this ISO date or date-time"),
		),
		imageOption(),
	)
}

func undeleteHandler(forests *Forests, writers WriterFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		image, err := forests.Image(req.GetString("image", ""))
		if err != nil {
			return toolError(err)
		}
		info, _, err := forests.Load(image)
		if err != nil {
			return toolError(err)
		}
		records, err := forests.Records(info.ID)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewUndeleteCommand(writers(image), records, req.GetString("destination", ""))
		cmd.RootID = domain.Int64(int64(req.GetInt("inode", -1)))
		if v := req.GetString("from_date", ""); v != "" {
			floor, err := application.ParseDateFloor(v)
			if err != nil {
				return toolError(err)
			}
			cmd.DateFloor = &floor
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.UnknownRoot {
			return toolError(fmt.Errorf("%w: %d", application.ErrUnknownRoot, *cmd.RootID))
		}

		text := result.Message + "\n"
		for _, f := range result.Report.Failures() {
			reason := f.Reason
			if f.Err != nil {
				reason = f.Err.Error()
			}
			text += fmt.Sprintf("failed %d %s: %s\n", f.ID, f.Path, reason)
		}
		return mcp.NewToolResultText(text), nil
	}
}
