package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	_ "github.com/sbilibin2017/echo/docs"
	"github.com/sbilibin2017/echo/internal/db"
	"github.com/sbilibin2017/echo/internal/jwt"
	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/repositories"
	"github.com/sbilibin2017/echo/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const shutdownTimeout = 10 * time.Second

// @title Echo API
// @version 1.0.0
// @description Social posting backend with profiles, posts and rotating refresh tokens
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// app is the composed HTTP application with the resources it owns.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Log.Errorw("failed to release resource", "error", err)
		}
	}
}

// setup wires storage, services and routes. Only configuration errors are
// fatal: an unreachable MySQL, Redis or Kafka leaves the app running degraded.
func setup(ctx context.Context, cfg config) (*app, error) {
	a := &app{}

	// MySQL
	manager := db.NewManager(db.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		Database:        cfg.DBName,
		ConnectTimeout:  cfg.DBConnTimeout,
		MaxAttempts:     cfg.DBInitRetries,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		QueueLimit:      cfg.DBQueueLimit,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    cfg.DBQueryTimeout,
	}, db.WithIsolation(cfg.Env == envTest))
	a.closers = append(a.closers, manager.Close)

	if _, err := manager.Initialize(ctx); err != nil {
		logger.Log.Errorw("starting without database", "error", err)
	} else if err := manager.Migrate(ctx, db.Schema); err != nil {
		logger.Log.Errorw("schema migration failed", "error", err)
	}

	// Redis feed cache
	var postCache services.PostCache
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warnw("redis unreachable, feed cache disabled", "error", err)
			_ = rdb.Close()
		} else {
			postCache = repositories.NewPostCacheRepository(rdb, cfg.RedisFeedExp)
			a.closers = append(a.closers, rdb.Close)
		}
	}

	// Kafka auth events
	authOpts := []services.AuthOpt{
		services.WithBcryptCost(cfg.BcryptCost),
		services.WithRefreshTokenTTL(cfg.RefreshTokenExp),
	}
	if len(cfg.KafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		}
		authOpts = append(authOpts, services.WithKafkaWriter(writer))
		a.closers = append(a.closers, writer.Close)
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.SecretKey),
		jwt.WithExpiration(cfg.AccessTokenExp),
	)

	// Repositories
	userReadRepo := repositories.NewUserReadRepository(manager)
	userWriteRepo := repositories.NewUserWriteRepository(manager)
	tokenReadRepo := repositories.NewRefreshTokenReadRepository(manager)
	tokenWriteRepo := repositories.NewRefreshTokenWriteRepository(manager)
	postReadRepo := repositories.NewPostReadRepository(manager)
	postWriteRepo := repositories.NewPostWriteRepository(manager)

	// Services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokenReadRepo, tokenWriteRepo, tokens, manager, authOpts...)
	userService := services.NewUserService(userReadRepo, userReadRepo, userWriteRepo, cfg.BcryptCost)
	postService := services.NewPostService(postReadRepo, postWriteRepo, postCache)

	a.handler = newRouter(routerDeps{
		cfg:     cfg,
		tokener: tokens,
		auth:    authService,
		users:   userService,
		posts:   postService,
	})
	return a, nil
}

// run initializes the logger and the application, then serves HTTP until a
// shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.production()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel, "env", cfg.Env)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutdown signal received, stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
			return err
		}
		logger.Log.Info("HTTP server stopped gracefully")
		return nil
	})

	return g.Wait()
}
