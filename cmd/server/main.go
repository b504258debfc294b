package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/exchange-settings-service/internal/cache"
	"github.com/maxviazov/exchange-settings-service/internal/config"
	"github.com/maxviazov/exchange-settings-service/internal/handler"
	"github.com/maxviazov/exchange-settings-service/internal/logger"
	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/notify"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
	"github.com/maxviazov/exchange-settings-service/internal/repository/memory"
	pgrepo "github.com/maxviazov/exchange-settings-service/internal/repository/postgres"
	"github.com/maxviazov/exchange-settings-service/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const cachePrefix = "exchange_setting"

type storage struct {
	settings repository.ExchangeSettingRepository
	tx       repository.TxManager
	pinger   repository.Pinger
	close    func()
}

func main() {
	configPath := flag.String("config", envOr("APP_CONFIG", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Str("version", cfg.App.Version).Str("env", cfg.App.Env).Msg("✅ Logger initialized successfully")

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer store.close()

	ready := handler.NamedPingers{"storage": store.pinger}

	var settingCache service.SettingCache // stays a nil interface without Redis
	var notifier notify.Notifier = notify.Nop{}
	var rc *redis.Client
	if cfg.Redis.Addr != "" {
		rc = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rc.Close() }()

		c := cache.New[model.ExchangeSettingDTO](rc, cachePrefix, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		settingCache = c
		ready["redis"] = c
		appLogger.Info().Str("addr", cfg.Redis.Addr).Msg("✅ Redis cache enabled")
	}

	switch cfg.Notifier.Kind {
	case "log":
		notifier = notify.NewLogNotifier(appLogger)
	case "redis":
		if rc == nil {
			return errors.New("notifier.kind=redis requires redis.addr")
		}
		notifier = notify.Multi{notify.NewLogNotifier(appLogger), notify.NewRedisNotifier(rc, cfg.Notifier.Channel)}
	}

	settingSvc := service.NewExchangeSettingService(store.settings, store.tx, settingCache, notifier, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	handler.Register(engine, ready, settingSvc, handler.PageDefaults{
		DefaultSize: cfg.Pagination.DefaultPageSize,
		MaxSize:     cfg.Pagination.MaxPageSize,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStorage picks Postgres when enabled and falls back to the in-memory store otherwise.
func openStorage(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) (*storage, error) {
	if !cfg.Postgres.Enabled {
		appLogger.Warn().Msg("postgres disabled, using in-memory storage")
		return &storage{
			settings: memory.NewExchangeSettingRepository(),
			tx:       memory.NewTxManager(),
			pinger:   memory.NewPinger(),
			close:    func() {},
		}, nil
	}

	db, err := repository.New(ctx, &cfg.Postgres, &appLogger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}
	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, cfg.Postgres.MigrationsDir, appLogger); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	return &storage{
		settings: pgrepo.NewExchangeSettingRepository(db.Pool()),
		tx:       pgrepo.NewTxManager(db.Pool()),
		pinger:   pgrepo.NewPinger(db.Pool()),
		close:    db.Close,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
