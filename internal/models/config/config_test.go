package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "ortus")
	t.Setenv("ADMIN_IDS", "1, 2,abc")
	t.Setenv("CORS_ORIGINS", "https://ortus.kz, http://localhost:3000")

	require.NoError(t, Load())

	assert.Equal(t, "5000", AppConfig.HTTP.Port)
	assert.Equal(t, 10*time.Second, AppConfig.HTTP.ShutdownTimeout)
	assert.Equal(t, []int64{1, 2}, AppConfig.Bot.AdminIDs)
	assert.Equal(t, []string{"https://ortus.kz", "http://localhost:3000"}, AppConfig.HTTP.CORSOrigins)
	assert.Equal(t, "disable", AppConfig.Database.SSLMode)
	assert.Equal(t, "Asia/Almaty", AppConfig.Location.String())
	assert.Equal(t, "postgres", AppConfig.Storage)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE", "memory")

	err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "STORAGE=memory is not allowed in production")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Username: "u", Password: "p", Name: "ortus", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ortus sslmode=require", d.DSN())
}
