package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Arham2306/Focus-Flow-Web-App/api"
	"github.com/Arham2306/Focus-Flow-Web-App/assist"
	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/config"
	"github.com/Arham2306/Focus-Flow-Web-App/events"
	"github.com/Arham2306/Focus-Flow-Web-App/notify"
	"github.com/Arham2306/Focus-Flow-Web-App/seed"
	"github.com/Arham2306/Focus-Flow-Web-App/storage"
	"github.com/Arham2306/Focus-Flow-Web-App/telemetry"
	"github.com/Arham2306/Focus-Flow-Web-App/transition"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.StandardLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing := telemetry.Setup(logger)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("shutdown tracing")
		}
	}()

	var rc *redis.Client
	if cfg.Storage.RedisConn != "" {
		opts, err := config.RedisOptions(cfg.Storage.RedisConn)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		rc = redis.NewClient(opts)
		defer rc.Close()
	}

	store, closeStore, err := openStore(ctx, cfg, rc)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStore()

	publisher, err := openPublisher(ctx, cfg, rc)
	if err != nil {
		log.Fatalf("events: %v", err)
	}

	var parser assist.Parser
	if cfg.Parser.URL != "" {
		parser = &assist.HTTPParser{URL: cfg.Parser.URL, Client: &http.Client{Timeout: cfg.Parser.Timeout}}
	}

	var dataset *board.Dataset
	if cfg.SeedFile != "" {
		if dataset, err = seed.Load(cfg.SeedFile); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	broker := api.NewBroker()
	b := board.New(ctx, board.Options{
		Store:        store,
		Logger:       logger,
		Publisher:    publisher,
		Parser:       parser,
		ParseTimeout: cfg.Parser.Timeout,
		Notifications: notify.Options{
			ToastTTL:   cfg.Notifications.ToastTTL,
			MaxEntries: cfg.Notifications.MaxEntries,
		},
		Seed:     dataset,
		OnChange: broker.Notify,
		Effects: board.EffectSinkFunc(func(_ context.Context, e transition.Effect) {
			logger.WithFields(log.Fields{"task_id": e.TaskID, "effect": string(e.Kind)}).Info("task completed")
		}),
	})
	defer b.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderContentEncoding, api.HeaderIdempotencyKey},
	}))
	apiOpts := api.Options{Pprof: cfg.Pprof}
	if cfg.IdempotencyTTL > 0 {
		apiOpts.Deduper = api.NewRedisDeduper(rc, cfg.Storage.KeyPrefix, cfg.IdempotencyTTL)
	}
	api.Register(e, b, broker, logger, apiOpts)

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()
	log.WithFields(log.Fields{"addr": cfg.ListenAddr, "backend": cfg.BackendName()}).Info("focusflow listening")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
}

func openStore(ctx context.Context, cfg config.Config, rc *redis.Client) (storage.KV, func(), error) {
	nop := func() {}
	switch cfg.BackendName() {
	case config.BackendRedis:
		return storage.NewRedis(rc, cfg.Storage.KeyPrefix), nop, nil
	case config.BackendSQLite:
		s, err := storage.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.WithError(err).Warn("close sqlite")
			}
		}, nil
	case config.BackendTable:
		if err := storage.CreateTables(ctx, cfg.Storage.ConnectionString, []string{cfg.Storage.Table}); err != nil {
			return nil, nop, err
		}
		t, err := storage.NewTable(cfg.Storage.ConnectionString, cfg.Storage.Table, cfg.Storage.Partition)
		if err != nil {
			return nil, nop, err
		}
		if cfg.Storage.CacheTTL > 0 {
			return storage.NewCache(t, rc, cfg.Storage.CacheTTL), nop, nil
		}
		return t, nop, nil
	default:
		return storage.NewMemory(), nop, nil
	}
}

func openPublisher(ctx context.Context, cfg config.Config, rc *redis.Client) (events.Publisher, error) {
	var pubs events.Multi
	if cfg.Events.Queue != "" {
		if err := storage.CreateQueues(ctx, cfg.Storage.ConnectionString, []string{cfg.Events.Queue}); err != nil {
			return nil, err
		}
		q, err := events.NewQueuePublisher(cfg.Storage.ConnectionString, cfg.Events.Queue)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, q)
	}
	if cfg.Events.Channel != "" {
		pubs = append(pubs, events.NewRedisPublisher(rc, cfg.Events.Channel))
	}
	if len(pubs) == 0 {
		return events.Nop{}, nil
	}
	return pubs, nil
}
