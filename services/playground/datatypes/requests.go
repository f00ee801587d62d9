// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides request and response types for the
// playground HTTP service.
//
// Request validation runs through gin's binding layer
// (go-playground/validator); RegisterValidators adds the custom dna
// format rule used at the API boundary.
package datatypes

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/TripLocal/services/dna"
)

const (
	// MaxPromptBytes bounds a single generation prompt.
	MaxPromptBytes = 8 * 1024

	// MaxVoiceTextLength mirrors the voice synthesis limit.
	MaxVoiceTextLength = 1000
)

// RegisterValidators installs custom validation rules on gin's binding
// validator. Call once at startup before serving requests.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dna", validateDNAField)
	}
}

// validateDNAField applies the 64-char lowercase hex rule to a string
// field tagged `binding:"dna"`.
func validateDNAField(fl validator.FieldLevel) bool {
	return dna.Validate(fl.Field().String())
}

// TripRequest asks for one creative-text generation.
type TripRequest struct {
	UserID       string   `json:"user_id"`
	Prompt       string   `json:"prompt" binding:"required,max=8192"`
	Persona      string   `json:"persona"`
	Model        string   `json:"model"`
	Temperature  *float64 `json:"temp" binding:"omitempty,gte=0,lte=2"`
	TopP         *float64 `json:"top_p" binding:"omitempty,gte=0,lte=1"`
	VoiceEnabled bool     `json:"voice_enabled"`
	Lang         string   `json:"lang"`
}

// TripResponse carries the generated text and its DNA fingerprint.
// Voice is base64 MP3, present only when synthesis was requested and
// succeeded.
type TripResponse struct {
	Output         string  `json:"output"`
	DNA            string  `json:"dna"`
	UserID         string  `json:"user_id"`
	GenerationTime float64 `json:"generation_time"`
	Voice          string  `json:"voice,omitempty"`
}

// RecreateRequest asks for the estimated parameters behind a DNA.
// The dna rule rejects malformed identifiers at the boundary even
// though the engine's decode is lenient.
type RecreateRequest struct {
	DNA string `json:"dna" binding:"required,dna"`
}

// RemixRequest splices two DNAs. CrossoverPoint outside [1, 63] is
// coerced to the default, matching the engine.
type RemixRequest struct {
	DNAA           string `json:"dna_a" binding:"required"`
	DNAB           string `json:"dna_b" binding:"required"`
	CrossoverPoint int    `json:"crossover_point"`
}

// MutateRequest perturbs one DNA. A nil MutationRate uses the default.
type MutateRequest struct {
	DNA          string   `json:"dna" binding:"required"`
	MutationRate *float64 `json:"mutation_rate"`
}

// CompatibilityRequest scores two DNAs for remixing. Validation is
// intentionally soft here; the engine reports malformed input inside
// the report body.
type CompatibilityRequest struct {
	DNAA string `json:"dna_a"`
	DNAB string `json:"dna_b"`
}

// PersonaRequest fingerprints a named persona and its traits.
type PersonaRequest struct {
	Name   string         `json:"name" binding:"required"`
	Traits map[string]any `json:"traits"`
}

// VoiceRequest asks for standalone speech synthesis.
type VoiceRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required,max=1000"`
	Lang   string `json:"lang"`
}

// SharePromptRequest publishes a prompt to the community gallery.
type SharePromptRequest struct {
	UserID      string   `json:"user_id" binding:"required"`
	Title       string   `json:"title" binding:"required,max=200"`
	Prompt      string   `json:"prompt" binding:"required,max=8192"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HistoryEntry is one generation in a user's history listing.
type HistoryEntry struct {
	Prompt         string         `json:"prompt"`
	Output         string         `json:"output"`
	DNA            string         `json:"dna"`
	Parameters     map[string]any `json:"parameters"`
	ModelUsed      string         `json:"model_used"`
	GenerationTime float64        `json:"generation_time"`
	Timestamp      string         `json:"timestamp"`
}

// UserStatsResponse reports usage counters. Limits are -1: the
// playground is open source and unlimited.
type UserStatsResponse struct {
	DailyUsage      int      `json:"daily_usage"`
	MonthlyUsage    int      `json:"monthly_usage"`
	TotalUsage      int      `json:"total_usage"`
	DailyLimit      int      `json:"daily_limit"`
	MonthlyLimit    int      `json:"monthly_limit"`
	AvailableModels []string `json:"available_models"`
	FeaturesEnabled []string `json:"features_enabled"`
	IsOpenSource    bool     `json:"is_open_source"`
}

// AvailableModels is the model list advertised to clients.
var AvailableModels = []string{"dolphin-phi:latest", "llama2:latest", "mistral:latest", "all"}

// Features is the feature list advertised to clients.
var Features = []string{"voice_synthesis", "dna_remix", "batch_generation", "collaboration"}
