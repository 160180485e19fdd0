package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/ParcelDesk/config"
	"github.com/BearBump/ParcelDesk/internal/api/httpapi"
	"github.com/BearBump/ParcelDesk/internal/broker/kafka"
	"github.com/BearBump/ParcelDesk/internal/cache/rediscache"
	"github.com/BearBump/ParcelDesk/internal/services/auth"
	"github.com/BearBump/ParcelDesk/internal/services/contacts"
	"github.com/BearBump/ParcelDesk/internal/services/inbox"
	"github.com/BearBump/ParcelDesk/internal/services/packages"
	"github.com/BearBump/ParcelDesk/internal/services/trackings"
	"github.com/BearBump/ParcelDesk/internal/storage/pgcourier"
	"github.com/go-chi/chi/v5"
)

type trackAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    trackAPIOpts
	router  chi.Router
	closers []func()
}

func mustBootstrapTrackAPI() *trackAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("config parse error, %v", err))
	}
	p := cfg.ParcelDesk

	st := mustOpenPostgresWithRetry(cfg.PostgresConnString(), 60*time.Second)
	rc := rediscache.New(cfg.RedisAddr())
	rl := rediscache.NewRateLimiter(cfg.RedisAddr())
	producer := kafka.NewProducer(cfg.KafkaBrokers())

	codes, err := trackings.NewSnowflakeCodes(p.SnowflakeNode)
	if err != nil {
		panic(err)
	}
	authSvc, err := auth.New(st, rl, auth.Config{
		Secret:         []byte(p.JWTSecret),
		TokenTTL:       time.Duration(p.TokenTTLMinutes) * time.Minute,
		LoginPerMinute: int64(p.LoginRateLimitPerMinute),
	})
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if p.AdminEmail != "" {
		if _, err := authSvc.EnsureAdmin(ctx, p.AdminName, p.AdminEmail, p.AdminPassword); err != nil {
			slog.Error("seed admin failed", "email", p.AdminEmail, "error", err.Error())
		}
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Trackings: trackings.New(st, rc, producer, codes, trackings.Config{
			SnapshotTTL: time.Duration(p.SnapshotTTLSeconds) * time.Second,
			StatusTopic: cfg.Kafka.StatusChangedTopicName,
		}),
		Contacts: contacts.New(st, contacts.Config{
			UploadDir:      p.UploadDir,
			MaxUploadBytes: p.MaxUploadBytes,
			MaxRows:        p.MaxImportRows,
		}),
		Packages:        packages.New(st),
		Inbox:           inbox.New(st),
		Auth:            authSvc,
		Limiter:         rl,
		LookupPerMinute: int64(p.LookupRateLimitPerMinute),
		AllowedOrigins:  p.AllowedOrigins,
		MaxUploadBytes:  p.MaxUploadBytes,
	})

	return &trackAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: trackAPIOpts{
			grpcAddr:     p.GRPCAddr,
			httpAddr:     p.HTTPAddr,
			grpcDialAddr: p.GRPCAddr,
			swaggerPath:  swaggerPath,
		},
		router: router,
		closers: []func(){
			func() { _ = producer.Close() },
			func() { _ = rc.Close() },
			st.Close,
		},
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgcourier.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgcourier.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *trackAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for _, c := range a.closers {
		c()
	}
}

func (a *trackAPIApp) Run() error {
	return runTrackAPI(a.ctx, a.opts, a.router)
}
