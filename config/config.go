package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir       string
	ClickhouseDSN string
	IngestTimeout time.Duration
}

var (
	config *Config
	once   sync.Once
)

const defaultIngestTimeout = 2 * time.Minute

// GetConfig returns the singleton configuration instance.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file, using environment only")
		}

		config = &Config{
			DataDir:       os.Getenv("DATA_DIR"),
			ClickhouseDSN: os.Getenv("CLICKHOUSE_DSN"),
			IngestTimeout: defaultIngestTimeout,
		}
		if config.DataDir == "" {
			config.DataDir = "data/datasets"
		}
		if raw := os.Getenv("INGEST_TIMEOUT"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				log.Printf("invalid INGEST_TIMEOUT %q: %v", raw, err)
			} else {
				config.IngestTimeout = d
			}
		}
	})
	return config
}
