package main

import (
	"context"
	"fmt"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/config"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/db"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/gormstore"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/supabase"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	logger.Init(cfg.AppEnv)
	return cfg, nil
}

// openStore picks the backend from DB_DRIVER. "supabase" talks plain SQL to
// the Supabase Postgres schema, everything else goes through GORM.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.DBDriver {
	case "supabase":
		s, err = supabase.Open(cfg.DBDSN)
	default:
		gdb, cerr := db.Connect(cfg.DBDriver, cfg.DBDSN)
		if cerr != nil {
			return nil, cerr
		}
		s = gormstore.New(gdb)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}

	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database ready", "driver", cfg.DBDriver)
	return s, nil
}
