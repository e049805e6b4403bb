// HuntStore document service
// Validated, versioned JSON document storage for scavenger hunt data
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkearney/huntstore/internal/logger"
	"github.com/mkearney/huntstore/internal/metrics"
	"github.com/mkearney/huntstore/internal/server"
	"github.com/mkearney/huntstore/pkg/backend"
	"github.com/mkearney/huntstore/pkg/registry"
	"github.com/mkearney/huntstore/pkg/validation"
)

var (
	dbPath      = flag.String("db", "huntstore-data", "Document store root directory")
	metricsPort = flag.Int("metrics-port", 9090, "Observability HTTP port")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	pretty      = flag.Bool("pretty", false, "Pretty-print logs for development")
	sweep       = flag.Bool("sweep", false, "Load every document once to converge schema versions, then exit")
)

func main() {
	flag.Parse()

	log := logger.NewLogger(logger.Config{
		Level:  *logLevel,
		Pretty: *pretty,
	})

	log.Info("HuntStore starting").
		Str("db", *dbPath).
		Int("metrics_port", *metricsPort).
		Msg("Configuration loaded")

	store, err := backend.NewFileStore(*dbPath)
	if err != nil {
		log.Fatal("Failed to open document store").Err(err).Send()
	}

	m := metrics.NewMetrics()
	vsvc := validation.NewService(registry.Schemas(), registry.Migrations(), log, m)
	svc := registry.NewService(store, vsvc, log, m)

	if *sweep {
		runSweep(log, svc)
		return
	}

	obs := server.NewObservabilityServer(*metricsPort, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down gracefully").Send()

		// Let any pending migration write-backs land before exit.
		svc.Flush()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := obs.Shutdown(ctx); err != nil {
			log.Error("Shutdown failed").Err(err).Send()
		}
	}()

	if err := obs.Start(); err != nil {
		log.Fatal("Observability server failed").Err(err).Send()
	}
}

// runSweep loads every stored document once. Loading validates and, where
// needed, migrates each document, and the write-back converges storage to
// the latest schema versions.
func runSweep(log *logger.Logger, svc *registry.Service) {
	ctx := context.Background()

	doc, etag := svc.LoadApp(ctx)
	log.Info("Swept app registry").
		Str("version", doc.SchemaVersion).
		Int("organizations", len(doc.Organizations)).
		Bool("existed", etag != "").
		Send()

	slugs, err := svc.ListOrgSlugs(ctx)
	if err != nil {
		log.Fatal("Failed to list organizations").Err(err).Send()
	}

	for _, slug := range slugs {
		org, _, err := svc.LoadOrg(ctx, slug)
		if err != nil {
			log.Error("Failed to sweep org").Str("org", slug).Err(err).Send()
			continue
		}
		log.Info("Swept org").
			Str("org", slug).
			Str("version", org.SchemaVersion).
			Int("hunts", len(org.Hunts)).
			Send()
	}

	svc.Flush()
	log.Info("Sweep complete").Int("orgs", len(slugs)).Send()
}
