package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tasktrack/internal/audit"
	"tasktrack/internal/auth"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	httpserver "tasktrack/internal/http"
	"tasktrack/internal/logger"
	"tasktrack/internal/seed"
	"tasktrack/internal/store"
	"tasktrack/internal/store/memory"
	"tasktrack/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogDev)
	if !cfg.EnvFile {
		log.Info().Msg(".env file not found, using system environment variables")
	}
	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}

	taskStore, auditStore, userStore, err := openStores(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open stores")
	}

	// The recorder is the single audit writer for the process.
	recorder := audit.NewRecorder(auditStore)
	guard := tasks.NewGuard(taskStore, recorder, tasks.DefaultPolicies())
	resolver := auth.NewResolver(userStore, cfg.JWTSecret)

	r := httpserver.NewRouter(log, resolver, guard)
	log.Info().Str("port", cfg.AppPort).Str("driver", cfg.StoreDriver).Msg("server listening")
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openStores(cfg config.Config, log zerolog.Logger) (store.TaskStore, store.AuditStore, store.UserStore, error) {
	ctx := context.Background()

	if cfg.StoreDriver == config.StoreMemory {
		users := memory.NewUserStore()
		if cfg.Seed {
			for _, u := range seed.Memory(users) {
				log.Info().Int64("user_id", u.ID).Int64("org_id", u.OrgID).Str("role", u.Role).Msg("seeded user")
			}
		}
		return memory.NewTaskStore(), memory.NewAuditStore(), users, nil
	}

	gdb, err := db.Connect(cfg.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.Seed {
		users, err := seed.FirstSetup(ctx, gdb)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, u := range users {
			log.Info().Int64("user_id", u.ID).Int64("org_id", u.OrgID).Str("role", u.Role).Msg("seeded user")
		}
	}

	s := store.NewGorm(gdb)
	return s, s, s, nil
}
