// Package config loads process configuration from the environment, with a
// .env file honored for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	RoomStore RoomStoreConfig
	Client    ClientConfig
	Vision    VisionConfig
	Ledger    LedgerConfig
}

// RoomStoreConfig configures the roomstore server.
type RoomStoreConfig struct {
	Addr      string
	RedisAddr string
	// RoomTTL is how long an untouched room document survives. Zero
	// disables expiry.
	RoomTTL time.Duration
}

// ClientConfig configures the CLI's cloud path.
type ClientConfig struct {
	// StoreURL is the base URL of the room store. Empty means the cloud
	// path is unavailable and only manual tokens work.
	StoreURL     string
	PollInterval time.Duration
	// ShareBaseURL is the web app URL that share links are built on.
	ShareBaseURL string
}

type VisionConfig struct {
	APIKey string
	Model  string
}

type LedgerConfig struct {
	Path string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		RoomStore: RoomStoreConfig{
			Addr:      getEnv("ROOMSTORE_ADDR", ":8080"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			RoomTTL:   getDuration("ROOM_TTL", 72*time.Hour),
		},
		Client: ClientConfig{
			StoreURL:     getEnv("ROOM_STORE_URL", ""),
			PollInterval: getDuration("POLL_INTERVAL", 5*time.Second),
			ShareBaseURL: getEnv("SHARE_BASE_URL", ""),
		},
		Vision: VisionConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", ""),
		},
		Ledger: LedgerConfig{
			Path: getEnv("LEDGER_PATH", "quickbite.db"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
