// Command pyjs-lsp runs the diagnostics-only Language Server over stdio.
package main

import (
	"context"
	"log"
	"os"

	"github.com/corvidlang/pyjs/internal/lspapi"
)

func main() {
	server := lspapi.NewServer(os.Stdin, os.Stdout)
	if err := server.Run(context.Background()); err != nil {
		log.Fatalf("lsp server exited: %v", err)
	}
}
