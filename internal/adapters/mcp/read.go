package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ntfsundeletetree/internal/domain"
)

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, forests *Forests) {
	s.AddTool(scansTool(), scansHandler(forests))
	s.AddTool(rootsTool(), rootsHandler(forests))
	s.AddTool(subtreeTool(), subtreeHandler(forests))
	s.AddTool(recordTool(), recordHandler(forests))
}

func imageOption() mcp.ToolOption {
	return mcp.WithString("image",
		mcp.Description("Image or device path the scan was taken of. Defaults to the server's image."),
	)
}

// --- scans ---

func scansTool() mcp.Tool {
	return mcp.NewTool("scans",
		mcp.WithDescription("List stored scan sessions, newest first."),
	)
}

func scansHandler(forests *Forests) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scans, err := forests.catalog.ListScans()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(scans, formatScan)
	}
}

// --- roots ---

func rootsTool() mcp.Tool {
	return mcp.NewTool("roots",
		mcp.WithDescription("List the top-level directories of the tree reconstructed from the latest scan of an image. Placeholder directories for parents missing from the scan are marked."),
		imageOption(),
	)
}

func rootsHandler(forests *Forests) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, forest, err := forests.Load(req.GetString("image", ""))
		if err != nil {
			return toolError(err)
		}

		nodes := make([]*domain.ForestNode, 0, len(forest.Roots))
		for _, id := range forest.Roots {
			nodes = append(nodes, forest.Index[id])
		}
		return formatEntities(nodes, formatNode)
	}
}

// --- subtree ---

func subtreeTool() mcp.Tool {
	return mcp.NewTool("subtree",
		mcp.WithDescription("Show the subtree below an inode as an indented \"inode: name\" listing."),
		mcp.WithNumber("inode",
			mcp.Description("Inode (MFT record number) of the subtree root"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum depth to show, 0 for unlimited"),
		),
		imageOption(),
	)
}

func subtreeHandler(forests *Forests) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, forest, err := forests.Load(req.GetString("image", ""))
		if err != nil {
			return toolError(err)
		}

		id := int64(req.GetInt("inode", -1))
		if _, ok := forest.Node(id); !ok {
			return toolError(fmt.Errorf("inode %d is not in the tree", id))
		}
		maxDepth := req.GetInt("depth", 0)

		var sb strings.Builder
		forest.Walk(id, func(n *domain.ForestNode, depth int) bool {
			fmt.Fprintf(&sb, "%s%d: %s\n", strings.Repeat("  ", depth), n.Record.ID, n.Record.Name)
			return maxDepth == 0 || depth+1 < maxDepth
		})
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- record ---

func recordTool() mcp.Tool {
	return mcp.NewTool("record",
		mcp.WithDescription("Show everything known about one inode: type, name, parent, recoverability, modification time, and children."),
		mcp.WithNumber("inode",
			mcp.Description("Inode (MFT record number)"),
			mcp.Required(),
		),
		imageOption(),
	)
}

func recordHandler(forests *Forests) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, forest, err := forests.Load(req.GetString("image", ""))
		if err != nil {
			return toolError(err)
		}

		id := int64(req.GetInt("inode", -1))
		node, ok := forest.Node(id)
		if !ok {
			return toolError(fmt.Errorf("inode %d is not in the tree", id))
		}
		rec := node.Record

		var sb strings.Builder
		fmt.Fprintf(&sb, "inode: %d\n", rec.ID)
		fmt.Fprintf(&sb, "type: %s\n", rec.Kind)
		fmt.Fprintf(&sb, "name: %s\n", rec.Name)
		if rec.HasParent() {
			fmt.Fprintf(&sb, "parent: %d\n", *rec.ParentID)
		}
		fmt.Fprintf(&sb, "recoverable: %s\n", rec.RecoverableString())
		fmt.Fprintf(&sb, "modified: %s\n", rec.LastModified.Format(time.RFC3339))
		if rec.Synthesized {
			sb.WriteString("synthesized: parent missing from scan\n")
		}
		fmt.Fprintf(&sb, "children: %d\n", len(node.Children))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatScan(s domain.ScanInfo) string {
	return fmt.Sprintf("%s  %s  %s  %d records", s.ID, s.Image, s.CreatedAt.Format(time.RFC3339), s.RecordCount)
}

func formatNode(n *domain.ForestNode) string {
	line := fmt.Sprintf("%d  %s  %d children", n.Record.ID, n.Record.Name, len(n.Children))
	if n.Record.Synthesized {
		line += "  (placeholder)"
	}
	return line
}
