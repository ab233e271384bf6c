package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"ringsim/internal/config"
	"ringsim/internal/sim"
)

func main() {
	cfg := config.Default()

	serversStr := flag.String("servers", "", "Comma-separated server ids present at startup (e.g. 1,2,3)")
	flag.IntVar(&cfg.Weight, "weight", cfg.Weight, "Virtual nodes per server")
	flag.StringVar(&cfg.Hash, "hash", cfg.Hash, "Placement hash: fnv1a or xxhash")
	flag.StringVar(&cfg.ScriptPath, "script", "", "Command script to run (default: read stdin)")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress log output")
	flag.Parse()

	servers, err := config.ParseServers(*serversStr)
	if err != nil {
		log.Fatalf("Invalid --servers: %v", err)
	}
	cfg.Servers = servers

	r, err := cfg.BuildRing()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Quiet {
		logger.SetOutput(io.Discard)
	}
	logger.Printf("[ringsim] Starting with %d servers, weight %d, hash %s", len(cfg.Servers), cfg.Weight, cfg.Hash)

	in := io.Reader(os.Stdin)
	if cfg.ScriptPath != "" {
		f, err := os.Open(cfg.ScriptPath)
		if err != nil {
			log.Fatalf("Failed to open script: %v", err)
		}
		defer f.Close()
		in = f
	}

	shell := sim.NewShell(r, os.Stdout, logger)
	if err := shell.Run(context.Background(), in); err != nil {
		logger.Printf("[ringsim] %v", err)
		os.Exit(1)
	}
	logger.Printf("[ringsim] Done")
}
