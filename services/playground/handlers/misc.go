// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the playground HTTP endpoints.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
)

var tracer = otel.Tracer("triplocal.playground.handlers")

// Synthesizer abstracts the voice backend so handlers can be tested
// without a network connection.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// AudioCache abstracts the synthesized-audio cache. A nil cache is
// valid and means every request synthesizes fresh audio.
type AudioCache interface {
	Get(text, voice string) ([]byte, bool)
	Set(text, voice string, audio []byte) error
}

// HealthCheck reports service liveness and the advertised feature set.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"features":    []string{"text_generation", "voice_synthesis", "dna_system", "community_sharing"},
		"open_source": true,
		"unlimited":   true,
		"models":      datatypes.AvailableModels,
	})
}
