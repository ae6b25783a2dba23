package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// config is read from the environment after loadDotEnv.
type config struct {
	Addr            string
	DataDir         string
	MaxDegree       int
	LogLevel        string
	ShutdownTimeout time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:            envOr("POLY_ADDR", ":8080"),
		DataDir:         envOr("POLY_DATA_DIR", "data"),
		LogLevel:        os.Getenv("POLY_LOG_LEVEL"),
		MaxDegree:       4096,
		ShutdownTimeout: 5 * time.Second,
	}

	if v := os.Getenv("POLY_MAX_DEGREE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return config{}, fmt.Errorf("POLY_MAX_DEGREE: invalid value %q", v)
		}
		cfg.MaxDegree = n
	}

	if v := os.Getenv("POLY_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("POLY_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
