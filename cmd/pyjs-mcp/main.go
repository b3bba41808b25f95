// Command pyjs-mcp exposes the pyjs compiler as an MCP tool server over
// stdio.
package main

import (
	"flag"
	"log"

	"github.com/corvidlang/pyjs/internal/config"
	"github.com/corvidlang/pyjs/internal/mcpapi"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	server := mcpapi.New(cfg.MCP.ServerName)
	if err := mcpapi.Serve(server); err != nil {
		log.Fatalf("mcp server exited: %v", err)
	}
}
