package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/utils"
)

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	BaseURL     string `yaml:"base_url"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	// RedisAddr enables the short-link cache when non-empty.
	RedisAddr string `yaml:"redis_addr"`
}

// LoadConfig reads env vars, then applies an optional YAML overlay from
// CONFIG_PATH. The overlay wins where both are set.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ListenAddr:  utils.GetEnv("LISTEN_ADDR", ":8080", log),
		BaseURL:     strings.TrimRight(utils.GetEnv("BASE_URL", "http://localhost:8080", log), "/"),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("VERSION", "dev", log),
		RedisAddr:   utils.GetEnv("REDIS_ADDR", "", log),
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %q: %w", path, err)
	}
	var overlay Config
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if overlay.ListenAddr != "" {
		cfg.ListenAddr = overlay.ListenAddr
	}
	if overlay.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(overlay.BaseURL, "/")
	}
	if overlay.Environment != "" {
		cfg.Environment = overlay.Environment
	}
	if overlay.Version != "" {
		cfg.Version = overlay.Version
	}
	if overlay.RedisAddr != "" {
		cfg.RedisAddr = overlay.RedisAddr
	}

	log.Info("Applied config overlay", "path", path)
	return cfg, nil
}
