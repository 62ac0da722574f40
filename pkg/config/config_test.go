package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DatesTTL)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TreeTTL)
	assert.Equal(t, "加治木", cfg.Reports.ShopAliases["加治"])
	assert.Equal(t, []string{"IMPORT_TEST_STORE"}, cfg.Reports.ExcludedShops)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SHOP_ALIASES", "A=B, C=D")
	t.Setenv("PAGE_CACHE_TTL_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cache.UsesRedis())
	assert.Equal(t, 6380, cfg.Cache.RedisPort)
	assert.Equal(t, map[string]string{"A": "B", "C": "D"}, cfg.Reports.ShopAliases)
	assert.Equal(t, 2*time.Hour, cfg.Cache.PageTTL)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AliasMalFormado(t *testing.T) {
	t.Setenv("SHOP_ALIASES", "sin-igual")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/x?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
