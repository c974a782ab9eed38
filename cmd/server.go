package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vzahanych/photo-app/internal/server"
	"github.com/vzahanych/photo-app/internal/storage"
	"github.com/vzahanych/photo-app/internal/store"
	"github.com/vzahanych/photo-app/pkg/metrics"
	"go.uber.org/zap"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the photography app API server",
		Long:  `Start the HTTP API serving film stocks, galleries, trips and photography conditions.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log.Info("Starting photography app server",
		zap.String("config_path", configPath),
		zap.String("version", cfg.Version),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	m := metrics.New()

	conditions, closeCache, err := newAggregator(ctx, m)
	if err != nil {
		log.Error("Failed to initialize conditions aggregator", zap.Error(err))
		return err
	}
	defer closeCache()

	db, err := store.Open(cfg.Database, log.Logger)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("Failed to migrate database", zap.Error(err))
		return err
	}

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		log.Error("Failed to initialize object storage", zap.Error(err))
		return err
	}
	uploader := storage.NewUploader(blobs, log.Logger, storage.WithRecorder(m))

	srv := server.New(cfg, server.Deps{
		Conditions: conditions,
		Store:      db,
		Uploader:   uploader,
		Metrics:    m,
		Logger:     log.Logger,
		Tele:       tele,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")

		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
