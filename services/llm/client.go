// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import "context"

// GenerationParams tunes a single creative-text generation.
//
// Nil pointer fields fall back to playground defaults (temperature 1.3,
// top_p 0.95, 600 tokens). Model overrides the backend's default model
// for this request; Persona becomes the system prompt.
type GenerationParams struct {
	Model       string   `json:"model"`
	Persona     string   `json:"persona"`
	Temperature *float64 `json:"temperature"`
	TopP        *float64 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
}

// Playground defaults, matching the tuning the UI ships with.
const (
	DefaultTemperature = 1.3
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 600
)

// Client defines the standard interface for any LLM backend.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
