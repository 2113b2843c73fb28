// Package config loads server-wide settings from the environment,
// following the walletserver's config package: godotenv loads a .env
// file if present, then os.Getenv with a fallback default for each
// setting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-tunable setting the server and CLI
// need. Grounded on chain.py's `from config import config` lookups
// (DUO_CHAIN_PATH) plus a configurable chain-cache TTL.
type Config struct {
	ChainPath    string
	CacheTTL     time.Duration
	ListenAddr   string
}

// Load reads .env (if present; a missing file is not an error, matching
// godotenv.Load's use across the pack for optional local overrides)
// then resolves each setting from the environment with a default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading env: %w", err)
	}

	chainPath := os.Getenv("DUO_CHAIN_PATH")
	if chainPath == "" {
		chainPath = "./chains"
	}

	ttl := 30 * time.Second
	if raw := os.Getenv("DUO_CACHE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DUO_CACHE_TTL_SECONDS: %w", err)
		}
		ttl = time.Duration(seconds) * time.Second
	}

	addr := os.Getenv("DUO_LISTEN_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	return Config{ChainPath: chainPath, CacheTTL: ttl, ListenAddr: addr}, nil
}
