package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	envDevelopment = "development"
	envProduction  = "production"
	envTest        = "test"
)

var errSecretKeyRequired = errors.New("SECRET_KEY must be set outside APP_ENV=test")

type config struct {
	AppHost        string
	AppPort        string
	LogLevel       string
	Env            string
	RequestTimeout time.Duration
	AllowedOrigins []string

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBConnTimeout  time.Duration
	DBInitRetries  int
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBQueueLimit   int
	DBQueryTimeout time.Duration

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisFeedExp      time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	BcryptCost      int
}

func (c config) production() bool { return c.Env == envProduction }

// parseConfig loads environment variables from an optional file and returns
// the application, database, Redis, Kafka and token configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		n, convErr := strconv.Atoi(getEnv(key, defaultValue))
		if convErr != nil {
			err = fmt.Errorf("%s: %w", key, convErr)
		}
		return n
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.Env = getEnv("APP_ENV", envDevelopment)
	cfg.RequestTimeout = time.Duration(getInt("APP_REQUEST_TIMEOUT_SECOND", "30")) * time.Second
	cfg.AllowedOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	switch cfg.Env {
	case envDevelopment, envProduction, envTest:
	default:
		return cfg, fmt.Errorf("APP_ENV: unknown environment %q", cfg.Env)
	}

	// MySQL config
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getInt("DB_PORT", "3306")
	cfg.DBUser = getEnv("DB_USER", "root")
	cfg.DBPassword = getEnv("DB_PASSWORD", "")
	cfg.DBName = getEnv("DB_NAME", "echo")
	cfg.DBConnTimeout = time.Duration(getInt("DB_CONNECT_TIMEOUT_MS", "10000")) * time.Millisecond
	cfg.DBInitRetries = getInt("DB_INIT_RETRIES", "10")
	cfg.DBMaxOpenConns = getInt("DB_MAX_OPEN_CONNS", "10")
	cfg.DBMaxIdleConns = getInt("DB_MAX_IDLE_CONNS", "5")
	cfg.DBQueueLimit = getInt("DB_QUEUE_LIMIT", "50")
	cfg.DBQueryTimeout = time.Duration(getInt("DB_QUERY_TIMEOUT_SECOND", "10")) * time.Second

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")
	cfg.RedisFeedExp = time.Duration(getInt("REDIS_FEED_EXP_SECOND", "30")) * time.Second

	// Kafka config
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "auth-events")

	// Token config
	cfg.SecretKey = getEnv("SECRET_KEY", "")
	cfg.AccessTokenExp = time.Duration(getInt("ACCESS_TOKEN_EXP_SECOND", "900")) * time.Second
	cfg.RefreshTokenExp = time.Duration(getInt("REFRESH_TOKEN_EXP_DAYS", "30")) * 24 * time.Hour
	cfg.BcryptCost = getInt("BCRYPT_COST", "10")

	if err != nil {
		return cfg, err
	}

	if cfg.RequestTimeout <= 0 {
		return cfg, fmt.Errorf("APP_REQUEST_TIMEOUT_SECOND: must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return cfg, fmt.Errorf("BCRYPT_COST: must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	if cfg.SecretKey == "" {
		if cfg.Env != envTest {
			return cfg, errSecretKeyRequired
		}
		if cfg.SecretKey, err = randomSecret(); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
