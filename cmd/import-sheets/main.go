// Package main bulk-loads character sheets from YAML into the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/importer"
	"github.com/cory-johannsen/keeper/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	source := flag.String("source", "", "YAML file or directory of sheet files")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "usage: import-sheets -source <file|dir> [-config <path>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening sheet store: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()
	if err := backend.Ready(ctx); err != nil {
		backend.Close()
		fmt.Fprintf(os.Stderr, "sheet store not ready: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	n, err := importer.New(importer.NewYAMLSource(), backend.Store, os.Stdout).Run(ctx, *source)
	if err != nil {
		backend.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d sheet(s) into %s storage in %s\n", n, cfg.Storage.Backend, time.Since(start).Round(time.Millisecond))
}
