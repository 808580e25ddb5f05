package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheen-dev/sheen/internal/config"
	"github.com/sheen-dev/sheen/internal/daemon"
	"github.com/sheen-dev/sheen/internal/display"
	"github.com/sheen-dev/sheen/internal/logging"
)

func runDaemon() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	handle, err := openResolver(cfg)
	if err != nil {
		log.Printf("Failed to open display backend: %v", err)
		return 1
	}
	defer handle.Close()
	log.Printf("Display backend ready (backend: %s)", handle.name)

	queryLog, err := logging.New(logging.Config{
		Enabled:   cfg.Logging.Enabled,
		Level:     logging.ParseLevel(cfg.Logging.Level),
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		log.Printf("Failed to open query log: %v", err)
		return 1
	}
	defer queryLog.Close()

	opts := daemon.Options{
		Backend:  handle.name,
		Resolver: handle.resolver,
		QueryLog: queryLog,
		Reopen: func() (string, display.Resolver, error) {
			newCfg, err := config.Load()
			if err != nil {
				return "", nil, fmt.Errorf("config reload failed: %w", err)
			}
			newHandle, err := openResolver(newCfg)
			if err != nil {
				return "", nil, err
			}
			handle.Close()
			handle = newHandle
			return newHandle.name, newHandle.resolver, nil
		},
	}
	if handle.conn != nil {
		// Watching makes reconfigurations visible in the query log;
		// queries re-enumerate regardless.
		conn := handle.conn
		opts.Watch = conn.WatchScreenChanges
	}

	d, err := daemon.New(opts)
	if err != nil {
		log.Printf("Failed to create daemon: %v", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received %v, shutting down...", sig)
		cancel()
	}()

	if err := d.Run(ctx); err != nil {
		log.Printf("Daemon error: %v", err)
		return 1
	}
	return 0
}
