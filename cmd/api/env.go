package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from POLY_ENV_FILE (default .env)
// when the file is present. Existing process environment variables are not
// overridden.
func loadDotEnv() error {
	path := envOr("POLY_ENV_FILE", ".env")

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
