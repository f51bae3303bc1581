package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/cache"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/events"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/routes"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/onboarding"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	projectCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, project cache disabled", "addr", cfg.RedisAddr, "error", err)
	} else if projectCache.Enabled() {
		logger.Info("redis project cache enabled", "addr", cfg.RedisAddr)
	}
	defer projectCache.Close()

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		k, err := events.NewKafka(cfg.KafkaBrokers, 5, 2*time.Second)
		if err != nil {
			return err
		}
		pub = k
		logger.Info("kafka publisher connected", "brokers", cfg.KafkaBrokers)
	}
	defer pub.Close()

	disk, err := storage.New(ctx, storage.Config{
		Driver:        cfg.StorageDriver,
		UploadDir:     cfg.UploadDir,
		PublicBaseURL: cfg.PublicBaseURL,
		S3Bucket:      cfg.S3Bucket,
		S3Region:      cfg.S3Region,
		S3Key:         cfg.S3Key,
		S3Secret:      cfg.S3Secret,
		S3Endpoint:    cfg.S3Endpoint,
		S3URL:         cfg.S3URL,
	})
	if err != nil {
		return err
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	lc := lifecycle.New(s, pub, hub, projectCache)
	app := routes.New(routes.Deps{
		Config:     cfg,
		Store:      s,
		Accounts:   account.New(s, cfg.AdminEmail, projectCache),
		Lifecycle:  lc,
		Onboarding: onboarding.New(s, disk, pub, hub),
		Hub:        hub,
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		errc <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
