package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*1024*1024, cfg.HTTP.UploadMaxBytes)
	assert.Equal(t, 30*time.Second, cfg.Session.CacheTTL)
	assert.Equal(t, "product-images", cfg.Storage.Bucket)
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err, "JWT_SECRET vacío debe rechazarse")
}

func TestFromViper_EnterosComoString(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("HTTP_PORT", "9090")
	v.Set("SESSION_CACHE_TTL_SECONDS", "5")
	v.Set("DB_PORT", "no-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Session.CacheTTL)
	assert.Equal(t, 5432, cfg.DB.Port, "un valor no numérico cae al default")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "dailishaw", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/dailishaw?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
