package app

import (
	"strings"
	"time"

	"github.com/igrejaviva/media-backend/internal/platform/envutil"
	"github.com/igrejaviva/media-backend/internal/services"
)

type Config struct {
	Port        string
	CORSOrigins []string
	Auth        services.AuthConfig
}

func LoadConfig() Config {
	origins := strings.Split(envutil.Get("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Port:        envutil.Get("PORT", "8080"),
		CORSOrigins: origins,
		Auth: services.AuthConfig{
			JWTSecret:         envutil.Get("JWT_SECRET_KEY", ""),
			AccessTokenTTL:    time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
			RefreshTokenTTL:   time.Duration(envutil.Int("REFRESH_TOKEN_TTL", 2592000)) * time.Second,
			AllowRegistration: envutil.Bool("ALLOW_ADMIN_REGISTRATION", false),
		},
	}
}
