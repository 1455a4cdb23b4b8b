package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bioread/bio-read/internal/config"
	"github.com/bioread/bio-read/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	version     = "0.3.0"
	serverName  = "bio-read-mcp-server"
	description = "MCP server applying bionic-reading emphasis to text"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// MCP uses stdout for protocol
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting...", serverName, version)

	server := createMCPServer()

	if err := registerTools(server); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}

	log.Printf("✓ Server ready and waiting for connections")

	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		&mcp.ServerOptions{Instructions: description},
	)

	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}

// registerTools loads the embedded profiles and registers the tools.
func registerTools(server *mcp.Server) error {
	loader, err := config.NewLoader(config.NewEmbeddedDataProvider())
	if err != nil {
		return fmt.Errorf("failed to load profile schema: %w", err)
	}

	toolCount := tools.RegisterTools(server, tools.NewService(loader))

	log.Printf("✓ All tools registered: %d tools (bionic_read + fixation_table + validate_profile)", toolCount)
	return nil
}
