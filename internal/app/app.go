package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"quay/internal/auth"
	"quay/internal/config"
	"quay/internal/httpserver"
	"quay/internal/httpserver/deps"
	"quay/internal/logger"
	"quay/internal/nav"
	"quay/internal/redis"
	"quay/internal/scheduler"
	"quay/internal/seed"
	"quay/internal/store"
	"quay/internal/store/memkv"
	"quay/internal/store/rediskv"
	"quay/internal/version"
	"quay/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	backup      *scheduler.Backup
}

func New() *App {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var (
		kv          store.KV
		pinger      deps.Pinger
		redisClient *goredis.Client
	)
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using the in-memory store backend, data will not survive a restart")
		kv = memkv.New()
	default:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		rkv := rediskv.New(client)
		kv = rkv
		pinger = rkv
	}

	authSvc := auth.NewService(kv, log)
	navSvc := nav.NewService(kv, log)

	renderer, err := web.New()
	if err != nil {
		log.Errorf("Failed to build page renderer: %v", err)
		os.Exit(1)
	}

	// First-run import: only fills an empty store, never overwrites.
	if cfg.SeedFile != "" {
		seeder := seed.NewSeeder(cfg.SeedFile, navSvc, log)
		if err := seeder.Run(context.Background()); err != nil {
			log.Warn("seed import failed, starting with whatever the store holds",
				logger.Error(err))
		}
	}

	backupTrigger := make(chan struct{}, 1)
	backup := scheduler.NewBackup(kv, navSvc, log, cfg.BackupInterval, backupTrigger)

	d := deps.Deps{
		Logger:            log,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		Auth:              authSvc,
		Nav:               navSvc,
		Renderer:          renderer,
		Pinger:            pinger,
		CookieMaxAge:      cfg.CookieMaxAge,
		CookieSecure:      cfg.CookieSecure,
		TrustProxy:        cfg.TrustProxy,
		AllowedHosts:      cfg.AllowedHosts,
		LoginBurst:        cfg.LoginBurst,
		LoginRefillPerMin: cfg.LoginRefillPerMin,
		BackupTrigger:     backupTrigger,
	}

	server := httpserver.New(cfg, log, d)

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      server,
		redisClient: redisClient,
		backup:      backup,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Quay v%s on %s", version.Version, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.backup.Start(ctx); err != nil {
		return fmt.Errorf("failed to start backup scheduler: %w", err)
	}
	a.logger.Info("backup scheduler started",
		logger.Duration("interval", a.cfg.BackupInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.backup.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("✅ Quay stopped cleanly")
	return nil
}
