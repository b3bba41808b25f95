// Command pyjs-server runs the HTTP translate endpoint and static GUI
// page.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/corvidlang/pyjs/internal/config"
	"github.com/corvidlang/pyjs/internal/httpapi"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	log.Printf("pyjs-server listening on %s", cfg.HTTP.Address)
	if err := http.ListenAndServe(cfg.HTTP.Address, httpapi.NewMux()); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
