package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		Host           string
		Port           int
		User           string
		Password       string
		Name           string
		SSLMode        string
		ConnectTimeout time.Duration
		OpTimeout      time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Message struct {
		MaxLength     int
		ListLimit     int
		PreviewLength int
	}

	QR struct {
		Size int
	}

	Cache struct {
		ViewTTL time.Duration
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "qr-messages")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_qr_messages")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.ConnectTimeout = getDuration("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.DB.OpTimeout = getDuration("DB_OP_TIMEOUT", 10*time.Second)

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Message limits
	cfg.Message.MaxLength = getInt("MESSAGE_MAX_LENGTH", 1000)
	cfg.Message.ListLimit = getInt("MESSAGE_LIST_LIMIT", 20)
	cfg.Message.PreviewLength = getInt("MESSAGE_PREVIEW_LENGTH", 50)

	// QR rendering
	cfg.QR.Size = getInt("QR_SIZE", 330)

	// Cache
	cfg.Cache.ViewTTL = getDuration("CACHE_VIEW_TTL", 24*time.Hour)

	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
		int(c.DB.ConnectTimeout.Seconds()),
	)
}
