// Package main runs the warm-up MCP server over stdio (for local editor use).
// The same MCP server is also mounted on the main service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gymstatsmcp "github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/mcp"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
)

func main() {
	catalogPath := flag.String("catalog", "", "optional path to a YAML warm-up catalog (built-in catalog when empty)")
	flag.Parse()

	catalog := warmup.DefaultCatalog()
	if *catalogPath != "" {
		var err error
		catalog, err = warmup.LoadCatalog(*catalogPath)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
	}

	service := warmup.NewService(warmup.NewGenerator(catalog), nil, nil)
	server := gymstatsmcp.NewServer(service, nil)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
