package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide settings. It is loaded once at startup
// and passed by value into constructors; nothing mutates it afterwards.
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	TokenSecret     string        `env:"TOKEN_SECRET,required"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	KakaoClientID    string `env:"KAKAO_CLIENT_ID,required"`
	KakaoRedirectURL string `env:"KAKAO_REDIRECT_URL,required"`
	KakaoAuthURL     string `env:"KAKAO_AUTH_URL" envDefault:"https://kauth.kakao.com/oauth/authorize"`
	KakaoTokenURL    string `env:"KAKAO_TOKEN_URL" envDefault:"https://kauth.kakao.com/oauth/token"`
	KakaoProfileURL  string `env:"KAKAO_PROFILE_URL" envDefault:"https://kapi.kakao.com/v2/user/me"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`

	// When RedisAddr is set, refresh-token credentials are kept in
	// Redis instead of Postgres.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
