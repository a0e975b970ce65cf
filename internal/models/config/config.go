package config

import "time"

// AppConfig глобальная конфигурация приложения
var AppConfig *Config

// Config основной конфиг
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Bot         BotConfig
	Database    DatabaseConfig
	Storage     string // postgres | memory
	Location    *time.Location
}

type HTTPConfig struct {
	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type BotConfig struct {
	Token    string
	Debug    bool
	AdminIDs []int64 // ID администраторов для уведомлений
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
