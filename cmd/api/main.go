package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/auth"
	"github.com/yelo29/barangayreservetest-1/internal/config"
	dbpkg "github.com/yelo29/barangayreservetest-1/internal/db"
	"github.com/yelo29/barangayreservetest-1/internal/infra/repository"
	"github.com/yelo29/barangayreservetest-1/internal/logger"
	"github.com/yelo29/barangayreservetest-1/internal/routes"
	"github.com/yelo29/barangayreservetest-1/internal/storage"
	"github.com/yelo29/barangayreservetest-1/internal/validators"
)

func main() {
	cfg := config.Load()

	log, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORES
	// ======================================================
	opened, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer opened.Close()

	store := opened.Store
	checks := opened.Checks

	rdb, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	var revoker auth.Revoker = auth.NopRevoker{}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
	}

	var objects storage.ObjectStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			log.Fatal("s3", zap.Error(err))
		}
		objects = s3Store
	} else {
		log.Warn("S3_BUCKET not set; uploads are kept in memory")
		objects = storage.NewMemoryStore("")
	}

	var authOpts []auth.Option
	if cfg.ValidateEmailDomain {
		authOpts = append(authOpts, auth.WithEmailChecker(validators.DomainChecker{Timeout: 3 * time.Second}))
	}

	deps := routes.Deps{
		Config:      cfg,
		Log:         log,
		Store:       store,
		Objects:     objects,
		Revoker:     revoker,
		Checks:      checks,
		AuthOptions: authOpts,
	}

	// ======================================================
	// STARTUP REPAIR
	// ======================================================
	report, err := routes.NewReconcile(deps, audit.New(store, log)).Execute(ctx, "system")
	if err != nil {
		log.Warn("startup reconcile failed", zap.Error(err))
	} else if report.Checked > 0 {
		log.Info("startup reconcile",
			zap.Int("checked", report.Checked),
			zap.Int("repaired", report.Repaired),
			zap.Strings("failed", report.Failed),
		)
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown failed", zap.Error(err))
	}
}
