package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE не зависит от tzdata в образе

	"github.com/joho/godotenv"
)

// DatabaseConfig конфигурация БД
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Name, d.SSLMode,
	)
}

// Load загружает конфигурацию
func Load() error {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Almaty"))
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	AppConfig = &Config{
		Environment: env,
		HTTP: HTTPConfig{
			Port:            getEnv("HTTP_PORT", "5000"),
			CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
			ShutdownTimeout: time.Duration(getEnvAsInt("HTTP_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Bot: BotConfig{
			Token:    getEnv("BOT_TOKEN", ""),
			Debug:    getEnvAsBool("BOT_DEBUG", env != "production"),
			AdminIDs: parseAdminIDs(getEnv("ADMIN_IDS", "")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Username: getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ortus"),
			SSLMode:  getSSLMode(env),
		},
		Storage:  getEnv("STORAGE", "postgres"),
		Location: loc,
	}

	return validate()
}

// validate проверяет обязательные параметры
func validate() error {
	var errors []string

	if AppConfig.Auth.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	switch AppConfig.Storage {
	case "postgres":
		if AppConfig.Database.Username == "" {
			errors = append(errors, "DB_USER is required")
		}
		if AppConfig.Database.Password == "" && AppConfig.IsProduction() {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	case "memory":
		if AppConfig.IsProduction() {
			errors = append(errors, "STORAGE=memory is not allowed in production")
		}
	default:
		errors = append(errors, "STORAGE must be postgres or memory")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

// getSSLMode возвращает режим SSL в зависимости от окружения
func getSSLMode(env string) string {
	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		return mode
	}
	if env == "production" {
		return "require" // В продакшене всегда SSL
	}
	return "disable"
}

// parseAdminIDs парсит список ID администраторов
func parseAdminIDs(ids string) []int64 {
	if ids == "" {
		return []int64{}
	}

	var result []int64
	for _, idStr := range strings.Split(ids, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
