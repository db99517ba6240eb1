package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 5, cfg.LoginMaxFails)
	require.Empty(t, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LOGIN_MAX_FAILS", "3")

	cfg := Load()
	require.Equal(t, ":9999", cfg.HTTPAddr)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	require.Equal(t, 3, cfg.LoginMaxFails)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	t.Setenv("LOGIN_MAX_FAILS", "many")

	cfg := Load()
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 5, cfg.LoginMaxFails)
}
