package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// Chat channel (Telegram)
	BotToken         string        `env:"BOT_TOKEN"`
	ChatTaskCooldown time.Duration `env:"CHAT_TASK_COOLDOWN" envDefault:"12s"`

	// Bot-score verification (reCAPTCHA v3). Disabled when the secret is empty.
	CaptchaSecret   string  `env:"RECAPTCHA_SECRET"`
	CaptchaMinScore float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.3"`

	// Database pool
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"5"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ChatTaskCooldown < ChatTaskCooldownMin || cfg.ChatTaskCooldown > ChatTaskCooldownMax {
		return nil, fmt.Errorf("CHAT_TASK_COOLDOWN must be between %s and %s, got %s",
			ChatTaskCooldownMin, ChatTaskCooldownMax, cfg.ChatTaskCooldown)
	}
	return cfg, nil
}

// ChatEnabled reports whether the chat channel should be started.
func (c *Config) ChatEnabled() bool {
	return c.BotToken != ""
}
