// sitechat: Construction Site Assistant MCP Server
//
// An MCP server that tracks construction projects and communicates
// with site teams over WhatsApp: progress milestones, inspection
// reminders, group messaging, and offline construction calculators.
//
// Usage:
//
//	sitechat serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"sitechat/internal/config"
	sitesrv "sitechat/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("sitechat v%s\n", sitesrv.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, cleanup, err := sitesrv.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Exit cleanly on interrupt so deferred cleanup runs. The stdio
	// server itself stops when the client closes stdin.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sitechat v%s — Construction Site Assistant MCP Server

Usage:
  sitechat serve    Start the MCP server (stdio transport)

Configuration (environment):
  SITECHAT_DATA_DIR       Data directory (default ~/.sitechat)
  SITECHAT_SELF_NAME      Display name for outgoing messages (default "Site Bot")
  SITECHAT_MESSAGE_LIMIT  Default group read size (default 10)

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "sitechat": {
        "command": "sitechat",
        "args": ["serve"]
      }
    }
  }
`, sitesrv.Version)
}
