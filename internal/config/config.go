package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Warning: invalid %s=%q, using default %s", key, val, defaultVal)
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN renders the key/value connection string understood by the postgres driver.
func (c DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + c.Host,
		"user=" + c.User,
		"password=" + c.Password,
		"dbname=" + c.Name,
		"port=" + c.Port,
		"sslmode=" + c.SSLMode,
	}
	return strings.Join(parts, " ")
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns host:port for the redis client.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Cache drivers.
const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
	CacheDriverNone   = "none"
)

type CacheConfig struct {
	Driver       string
	TTL          time.Duration // zero keeps entries until they are invalidated
	FlushOnStart bool
}

type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level string
	Dev   bool
}

// Config is the full process configuration assembled from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Log      LogConfig
}

// Load reads the process configuration. Call LoadEnv first to pick up a .env file.
func Load() Config {
	dev := GetBoolEnv("LOG_DEV", !IsProduction())
	level := GetEnv("LOG_LEVEL", "")
	if level == "" {
		if dev {
			level = "debug"
		} else {
			level = "info"
		}
	}

	return Config{
		Server: ServerConfig{
			Port:        GetEnv("PORT", "3000"),
			CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "marketplace"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         GetEnv("REDIS_HOST", "localhost"),
			Port:         GetEnv("REDIS_PORT", "6379"),
			Password:     GetEnv("REDIS_PASSWORD", ""),
			DB:           GetIntEnv("REDIS_DB", 0),
			PoolSize:     GetIntEnv("REDIS_POOL_SIZE", 10),
			DialTimeout:  GetDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  GetDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: GetDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Cache: CacheConfig{
			Driver:       strings.ToLower(GetEnv("CACHE_DRIVER", CacheDriverRedis)),
			TTL:          GetDurationEnv("CACHE_TTL", 0),
			FlushOnStart: GetBoolEnv("CACHE_FLUSH_ON_START", false),
		},
		Auth: AuthConfig{
			JWTSecret: GetEnv("JWT_SECRET", ""),
		},
		Log: LogConfig{
			Level: level,
			Dev:   dev,
		},
	}
}
