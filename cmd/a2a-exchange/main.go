// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command a2a-exchange serves the A2A task and push notification registry
// over JSON-RPC.
//
// Usage:
//
//	a2a-exchange serve [-config config.yaml]
//	a2a-exchange token [-config config.yaml] [-ttl 1h] <subject>
//	a2a-exchange version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/a2a-exchange/auth"
	"github.com/go-a2a/a2a-exchange/config"
	"github.com/go-a2a/a2a-exchange/server"
	"github.com/go-a2a/a2a-exchange/storage/factory"
	"github.com/go-a2a/a2a-exchange/task"
)

// Set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "serve":
		err = runServe(ctx, args[1:], stderr)
	case "token":
		err = runToken(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "a2a-exchange %s (%s)\n", Version, GitCommit)
	case "help", "-h", "--help":
		usage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "a2a-exchange: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: a2a-exchange <command> [flags]

Commands:
  serve     start the JSON-RPC server
  token     issue a bearer token signed with the configured secret
  version   print version information
`)
}

func loadConfig(path string) (*config.Config, error) {
	return config.NewLoader().WithPath(path).Load()
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, stderr)

	handler, cleanup, err := newHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}
	return serve(ctx, ln, handler, cfg.Server, logger)
}

// newHandler assembles the storage backend, the stores and the HTTP binding.
func newHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	backend, err := factory.NewBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}

	c, err := factory.NewCodec(cfg.Storage)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	tasks := task.NewStore(backend, task.WithCodec(c), task.WithLogger(logger))
	card := cfg.Agent
	d := server.NewDispatcher(tasks, task.NewPushConfigStore(tasks),
		server.WithAgentCard(&card),
		server.WithLogger(logger),
	)

	opts := []server.HTTPOption{
		server.WithEndpoint(cfg.Server.Endpoint),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		server.WithHTTPLogger(logger),
	}
	if cfg.Auth.Enabled() {
		v, err := auth.NewVerifier([]byte(cfg.Auth.Secret), cfg.Auth.Issuer)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, server.WithVerifier(v))
	}

	logger.Info("storage ready",
		slog.String("type", cfg.Storage.Type),
		slog.String("codec", c.Name()),
		slog.Bool("auth", cfg.Auth.Enabled()),
	)
	return server.NewHTTPHandler(d, opts...), cleanup, nil
}

// serve runs the HTTP server on ln until ctx is done, then shuts it down.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", ln.Addr().String()), slog.String("endpoint", cfg.Endpoint))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runToken(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML config file")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("token: exactly one subject is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return errors.New("token: auth.secret is not configured")
	}

	v, err := auth.NewVerifier([]byte(cfg.Auth.Secret), cfg.Auth.Issuer)
	if err != nil {
		return err
	}
	token, err := v.Sign(fs.Arg(0), *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}
