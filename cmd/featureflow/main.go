// Package main implements the entry point for the FeatureFlow ingestion
// binary. One invocation performs one full ingestion pass: export the
// configured collection, persist the feature store, split into train/test
// files, and report the resulting artifact.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/featureflow/config"
	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/ingestion"
	"github.com/c360/featureflow/input/mongodb"
	"github.com/c360/featureflow/metric"
	"github.com/c360/featureflow/notify"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "featureflow"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("ingestion failed", "error", err, "trace", errors.TraceOf(err), "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("starting FeatureFlow ingestion",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	loader := config.NewLoader()
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := metric.NewMetricsRegistry()

	reader, err := mongodb.NewReader(mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		Collection:     cfg.Mongo.Collection,
		CAFile:         cfg.Mongo.CAFile,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		DisableTLS:     cfg.Mongo.DisableTLS,
	}, logger)
	if err != nil {
		return err
	}

	opts := []ingestion.Option{
		ingestion.WithLogger(logger),
		ingestion.WithMetrics(registry.CoreMetrics()),
	}

	if cfg.Notify.Enabled {
		publisher, err := notify.NewPublisher(notify.Config{
			URLs:    cfg.Notify.URLs,
			Subject: cfg.Notify.Subject,
		}, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, ingestion.WithPublisher(publisher))
	}

	pipeline, err := ingestion.NewPipeline(cfg.Ingestion, reader, opts...)
	if err != nil {
		return err
	}

	artifact, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	out, _ := json.Marshal(artifact)
	fmt.Println(string(out))
	return nil
}
