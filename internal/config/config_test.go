package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/dom/hero-archive/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "missing secret",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "defaults",
			env:  map[string]string{"JWT_SECRET": "s3cret"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, 24, cfg.JWTExpirationHours)
				assert.Equal(t, 5*time.Minute, cfg.HeroCacheTTL)
				assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
				assert.True(t, cfg.LocalAuthEnabled())
			},
		},
		{
			name: "remote key set without secret",
			env:  map[string]string{"JWKS_URL": "https://issuer.example/.well-known/jwks.json"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.False(t, cfg.LocalAuthEnabled())
			},
		},
		{
			name: "origin list",
			env: map[string]string{
				"JWT_SECRET":           "s3cret",
				"CORS_ALLOWED_ORIGINS": "http://localhost:5173, https://heroes.example ,",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"http://localhost:5173", "https://heroes.example"}, cfg.CORSAllowedOrigins)
			},
		},
		{
			name:    "non-positive expiry",
			env:     map[string]string{"JWT_SECRET": "s3cret", "JWT_EXPIRATION_HOURS": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"JWT_SECRET", "JWKS_URL", "JWT_EXPIRATION_HOURS", "CORS_ALLOWED_ORIGINS", "PORT", "HERO_CACHE_TTL_SECONDS"} {
				// restored by t.Setenv's cleanup
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_Verification(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret", JWTIssuer: "hero-archive"}

	v := cfg.Verification()
	assert.Equal(t, []byte("s3cret"), v.Secret)
	assert.Equal(t, "hero-archive", v.Issuer)
	assert.Len(t, v.Roles, 2)
}
