package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umccr/igv-server/internal/awsutils"
	"github.com/umccr/igv-server/internal/igvconfig"
	"github.com/umccr/igv-server/internal/igvlog"
	"github.com/umccr/igv-server/internal/igvmenu"
	"github.com/umccr/igv-server/internal/igvserver"
)

func main() {
	cfg, err := igvconfig.Load()
	if err != nil {
		igvlog.Error("config: %v", err)
		os.Exit(1)
	}

	igvlog.Setup(cfg.LogLevel)
	igvlog.Info("config: %s", cfg)

	store, err := awsutils.NewStore(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		igvlog.Error("object store: %v", err)
		os.Exit(1)
	}

	airtable := igvmenu.NewAirtableClient(
		cfg.AirtableEndpoint,
		cfg.AirtableAPIKey,
		cfg.ExperimentsTable,
		cfg.SamplesTable,
		cfg.SampleExperimentField,
	)
	menu := igvmenu.NewService(airtable, cfg.PublicBaseURL, cfg.MenuCacheTTL)

	server := igvserver.New(cfg, store, menu)
	go server.Run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Close(ctx)
}
