// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command playground starts the creative-text playground HTTP server.
//
// It reads configuration from environment variables and starts the
// server.
//
// # Environment Variables
//
//   - PLAYGROUND_PORT: HTTP server port (default: 12300)
//   - LLM_BACKEND_TYPE: model runtime - ollama, openai (default: ollama)
//   - PLAYGROUND_DB_PATH: SQLite database file (default: ./playground.db)
//   - PLAYGROUND_VOICE_ENABLED: enable speech synthesis (default: true)
//   - PLAYGROUND_AUDIO_CACHE: badger directory for audio (default: ./audio-cache)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (optional)
//
// # Usage
//
//	# Build
//	go build -o playground ./cmd/playground
//
//	# Run
//	./playground
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/AleutianAI/TripLocal/services/playground"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := playground.Config{
		Port:           getEnvInt("PLAYGROUND_PORT", 12300),
		LLMBackend:     getEnvString("LLM_BACKEND_TYPE", "ollama"),
		DBPath:         getEnvString("PLAYGROUND_DB_PATH", "./playground.db"),
		OTelEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		VoiceEnabled:   getEnvBool("PLAYGROUND_VOICE_ENABLED", true),
		AudioCachePath: getEnvString("PLAYGROUND_AUDIO_CACHE", "./audio-cache"),
		GinMode:        os.Getenv("GIN_MODE"),
	}

	slog.Info("Starting playground",
		"port", cfg.Port,
		"llm_backend", cfg.LLMBackend,
		"db_path", cfg.DBPath,
		"voice_enabled", cfg.VoiceEnabled,
	)

	svc, err := playground.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create playground: %v", err)
	}

	if err := svc.Run(); err != nil {
		log.Fatalf("Playground error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as a bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
