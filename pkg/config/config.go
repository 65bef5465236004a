// Файл: pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// BackendConfig описывает внешний REST API клиники.
type BackendConfig struct {
	// Origin без завершающего слэша, например "http://localhost:3000".
	Origin   string
	BasePath string
	// MediaBase - префикс для относительных путей медиа, отдаваемых бэкендом.
	MediaBase string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type LocaleConfig struct {
	Default    string
	CookieName string
}

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Log     LogConfig
	Locale  LocaleConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Backend: BackendConfig{
			Origin:    getEnv("BACKEND_ORIGIN", "http://localhost:3000"),
			BasePath:  getEnv("BACKEND_BASE_PATH", "/api"),
			MediaBase: getEnv("MEDIA_BASE", "/api"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "clinic_session"),
			TTL:        getEnvDuration("SESSION_TTL", time.Hour*24*7),
			Secure:     getEnvBool("SESSION_SECURE", false),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "debug"),
			File:       getEnv("LOG_FILE", "./logs/app.log"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},
		Locale: LocaleConfig{
			Default:    getEnv("DEFAULT_LOCALE", "ru"),
			CookieName: getEnv("LOCALE_COOKIE", "i18nextLng"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Предупреждение: %s=%q не является числом, используется %d", key, value, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Предупреждение: %s=%q не является длительностью, используется %s", key, value, fallback)
	}
	return fallback
}
