package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ntfsundeletetree/internal/adapters/filesystem"
	mcpadapter "ntfsundeletetree/internal/adapters/mcp"
	"ntfsundeletetree/internal/adapters/ntfsundelete"
	"ntfsundeletetree/internal/adapters/sqlite"
	"ntfsundeletetree/internal/config"
	"ntfsundeletetree/internal/logger"
	"ntfsundeletetree/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ntfsundeletetree-mcp: %v", err)
	}

	catalogFlag := flag.String("catalog", cfg.Catalog, "SQLite scan catalog")
	imageFlag := flag.String("image", "", "image used when a tool call names none")
	toolFlag := flag.String("ntfsundelete", cfg.NtfsUndelete, "path to the ntfsundelete binary")
	flag.Parse()

	if *catalogFlag == "" {
		log.Fatal("ntfsundeletetree-mcp: --catalog is required")
	}
	logger.SetVerbose(cfg.Verbose)

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(*catalogFlag); err != nil {
		log.Fatalf("ntfsundeletetree-mcp: %v", err)
	}
	defer catalog.Close()

	client := ntfsundelete.NewClient(ntfsundelete.WithBinary(*toolFlag))
	forests := mcpadapter.NewForests(catalog, *imageFlag)

	mcpServer := server.NewMCPServer(
		"ntfsundeletetree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, forests)
	mcpadapter.RegisterWriteTools(mcpServer, forests, func(image string) ports.TreeWriter {
		return filesystem.NewMaterializer(client, image)
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("ntfsundeletetree-mcp: %v", err)
	}
}
