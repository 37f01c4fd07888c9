package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	Port           string
	MaxUploadBytes int64 // ceiling for multipart photo uploads
}

const defaultMaxUploadBytes = 10 << 20 // 10 MiB

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	maxUploadBytes := int64(defaultMaxUploadBytes)
	if envMax := os.Getenv("MAX_UPLOAD_BYTES"); envMax != "" {
		if limit, err := strconv.ParseInt(envMax, 10, 64); err == nil && limit > 0 {
			maxUploadBytes = limit
		}
	}

	return &Config{
		DatabaseURL:    databaseURL,
		Port:           port,
		MaxUploadBytes: maxUploadBytes,
	}
}
