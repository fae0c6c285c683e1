package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucWalkin "github.com/BruksfildServices01/salon-scheduler/internal/usecase/walkin"
)

func main() {

	cfg := config.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Error("failed to open database", "err", err)
		os.Exit(1)
	}

	locker, err := newLocker(cfg)
	if err != nil {
		log.Error("failed to set up queue lock", "err", err)
		os.Exit(1)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, auditDispatcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	auditDispatcher.Close()
}

// newLocker shares queue locks through Redis when REDIS_URL is set, so
// several API instances can serve one branch.
func newLocker(cfg *config.Config) (ucWalkin.Locker, error) {
	if cfg.RedisURL == "" {
		return lock.NewLocal(), nil
	}

	rl, err := lock.NewRedisFromURL(cfg.RedisURL, "salon")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rl.Ping(ctx); err != nil {
		return nil, err
	}

	slog.Info("queue lock backed by redis")
	return rl, nil
}
