package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for a service.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Services ServicesConfig
	Activity ActivityConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ServicesConfig locates the peer services and bounds calls made to them.
type ServicesConfig struct {
	UserBaseURL        string
	TaskBaseURL        string
	CallTimeoutSeconds int
}

// ActivityConfig holds the activity webhook endpoint.
type ActivityConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
// serviceName is the default APP_NAME.
func Load(serviceName string) (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", serviceName),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Services: ServicesConfig{
			UserBaseURL:        strings.TrimRight(getEnv("USER_SERVICE_BASE", "http://user-service:8080"), "/"),
			TaskBaseURL:        strings.TrimRight(getEnv("TASK_SERVICE_BASE", getEnv("TASK_BASE", "http://task-service:8080")), "/"),
			CallTimeoutSeconds: getEnvAsInt("SERVICE_CALL_TIMEOUT_SECONDS", 5),
		},
		Activity: ActivityConfig{
			WebhookURL: getEnv("ACTIVITY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CallTimeout bounds a single cross-service call.
func (s ServicesConfig) CallTimeout() time.Duration {
	if s.CallTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.CallTimeoutSeconds) * time.Second
}

// redisAddr prefers REDIS_ADDR and falls back to the REDIS_HOST/REDIS_PORT pair.
func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	host := getEnv("REDIS_HOST", "127.0.0.1")
	port := getEnv("REDIS_PORT", "6379")
	return fmt.Sprintf("%s:%s", host, port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
