// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/TripLocal/services/dna"
	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/observability"
)

// HandleRecreate decodes a stored DNA back into estimated parameters.
// The binding layer enforces the strict format check; the engine's
// decode itself is lenient by design.
func HandleRecreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleRecreate")
		defer span.End()

		var req datatypes.RecreateRequest
		if err := c.BindJSON(&req); err != nil {
			observability.DefaultMetrics.RecordDNAOperation("decode", false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid DNA format"})
			return
		}

		estimate := dna.Decode(req.DNA)
		observability.DefaultMetrics.RecordDNAOperation("decode", true)
		c.JSON(http.StatusOK, estimate)
	}
}

// HandleRemix splices two DNAs at the requested crossover point.
func HandleRemix() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleRemix")
		defer span.End()

		var req datatypes.RemixRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		point := req.CrossoverPoint
		if point == 0 {
			point = dna.DefaultCrossoverPoint
		}
		remixed, err := dna.Remix(req.DNAA, req.DNAB, point)
		if err != nil {
			if errors.Is(err, dna.ErrInvalidDNA) {
				observability.DefaultMetrics.RecordDNAOperation("remix", false)
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid DNA format"})
				return
			}
			slog.Error("Remix failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		observability.DefaultMetrics.RecordDNAOperation("remix", true)
		c.JSON(http.StatusOK, gin.H{"dna": remixed})
	}
}

// HandleMutate applies random per-character mutation to a DNA.
func HandleMutate() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleMutate")
		defer span.End()

		var req datatypes.MutateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		rate := dna.DefaultMutationRate
		if req.MutationRate != nil {
			rate = *req.MutationRate
		}
		mutated, err := dna.Mutate(req.DNA, rate)
		if err != nil {
			if errors.Is(err, dna.ErrInvalidDNA) {
				observability.DefaultMetrics.RecordDNAOperation("mutate", false)
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid DNA format"})
				return
			}
			slog.Error("Mutate failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		observability.DefaultMetrics.RecordDNAOperation("mutate", true)
		c.JSON(http.StatusOK, gin.H{"dna": mutated})
	}
}

// HandleCompatibility scores two DNAs for remixing. Invalid input
// comes back inside the report body with HTTP 200, so gallery UIs can
// render the message without special error handling.
func HandleCompatibility() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleCompatibility")
		defer span.End()

		var req datatypes.CompatibilityRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		report := dna.Compatibility(req.DNAA, req.DNAB)
		observability.DefaultMetrics.RecordDNAOperation("compatibility", report.Error == "")
		c.JSON(http.StatusOK, report)
	}
}

// HandlePersona fingerprints a named persona and its trait map.
func HandlePersona() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandlePersona")
		defer span.End()

		var req datatypes.PersonaRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		fingerprint := dna.GeneratePersona(req.Name, req.Traits)
		observability.DefaultMetrics.RecordDNAOperation("generate_persona", true)
		c.JSON(http.StatusOK, gin.H{"dna": fingerprint, "persona": req.Name})
	}
}
