package main

import (
	"errors"
	"fmt"
	"io/fs"

	"backend-service/config"
	"backend-service/validations"

	"github.com/joho/godotenv"
)

// loadEnvFiles merges .env files into the process environment.
// Variables already set in the environment win; missing files are skipped.
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// loadConfig reads and validates configuration. It runs before anything is bound.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := validations.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
