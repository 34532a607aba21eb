// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// persons-mock is an in-memory drop-in for the person directory REST
// service, for development and integration tests. It serves the same
// collection endpoints as the real service:
//
//   - GET    /api/persons/       list in insertion order
//   - POST   /api/persons/       create; identifiers are sequential integers
//   - GET    /api/persons/{id}/  fetch one
//   - PUT    /api/persons/{id}/  replace
//   - DELETE /api/persons/{id}/  remove
//
// plus GET /healthz and GET /metrics (Prometheus). Records are validated
// as the real service does, with 400 responses mapping field names to
// messages. Nothing is persisted; --seed loads initial records from a
// JSONC file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/persons/lib/config"
	"github.com/bureau-foundation/persons/lib/personmock"
	"github.com/bureau-foundation/persons/lib/process"
	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/version"
)

// shutdownTimeout bounds how long in-flight requests may finish after
// a signal.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		listen      string
		seedPath    string
		token       string
		latency     time.Duration
		gzip        bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("persons-mock", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "config file; flags override its mock section")
	flagSet.StringVar(&listen, "listen", "", "TCP address to serve on (default 127.0.0.1:8000)")
	flagSet.StringVar(&seedPath, "seed", "", "JSONC file of initial records")
	flagSet.StringVar(&token, "token", "", "require this token on collection requests")
	flagSet.DurationVar(&latency, "latency", 0, "delay added to every collection request")
	flagSet.BoolVar(&gzip, "gzip", false, "compress responses for clients that accept gzip")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		version.Print("persons-mock")
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if flagSet.Changed("listen") {
		cfg.Mock.Listen = listen
	}
	if flagSet.Changed("seed") {
		cfg.Mock.Seed = seedPath
	}
	if flagSet.Changed("token") {
		cfg.Mock.Token = token
	}
	if flagSet.Changed("latency") {
		cfg.Mock.Latency = latency.String()
	}
	if flagSet.Changed("gzip") {
		cfg.Mock.Gzip = gzip
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var seed []person.Record
	if cfg.Mock.Seed != "" {
		records, err := personmock.ReadSeedFile(cfg.Mock.Seed)
		if err != nil {
			return err
		}
		seed = records
	}

	backend := personmock.New(personmock.Config{
		Token:   cfg.Mock.Token,
		Latency: cfg.MockLatency(),
		Gzip:    cfg.Mock.Gzip,
		Logger:  logger,
	}, seed...)
	backend.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.Mock.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Mock.Listen, err)
	}
	server := &http.Server{
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	logger.Info("persons-mock listening",
		"address", listener.Addr().String(),
		"records", len(seed),
		"version", version.Short(),
	)

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("persons-mock stopped")
	return nil
}
