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
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/TripLocal/services/dna"
	"github.com/AleutianAI/TripLocal/services/llm"
	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/observability"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
	"github.com/AleutianAI/TripLocal/services/voice"
)

const defaultModel = "dolphin-phi:latest"

// HandleTrip runs one creative-text generation: call the model runtime,
// fingerprint the parameters, optionally synthesize voice, and persist
// the result. The DNA is always computed from the deterministic engine
// so any party can recompute it from the stored parameters.
func HandleTrip(llmClient llm.Client, store *sqlite.Store, synth Synthesizer, cache AudioCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleTrip")
		defer span.End()
		started := time.Now()

		var req datatypes.TripRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the trip request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		userID := req.UserID
		if userID == "" {
			userID = uuid.NewString()
		}
		slog.Info("Generation request", "user_id", userID)

		if _, err := store.GetOrCreateUser(ctx, userID); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to load user", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		model := req.Model
		if model == "" {
			model = defaultModel
		}
		temperature := llm.DefaultTemperature
		if req.Temperature != nil {
			temperature = *req.Temperature
		}
		topP := llm.DefaultTopP
		if req.TopP != nil {
			topP = *req.TopP
		}
		span.SetAttributes(attribute.String("llm.model", model))

		metrics := observability.DefaultMetrics
		metrics.GenerationStarted()
		defer metrics.GenerationEnded()

		output, err := llmClient.Generate(ctx, req.Prompt, llm.GenerationParams{
			Model:       model,
			Persona:     req.Persona,
			Temperature: &temperature,
			TopP:        &topP,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("LLM generation failed", "model", model, "error", err)
			metrics.RecordGeneration(model, 0, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		fingerprint := dna.Generate(req.Prompt, temperature, topP, model)
		metrics.RecordDNAOperation("generate", true)

		// Voice failures never fail the generation; the response just
		// ships without audio.
		var voiceB64 string
		if req.VoiceEnabled && synth != nil {
			if audio := synthesizeCached(ctx, synth, cache, output, req.Lang); len(audio) > 0 {
				voiceB64 = base64.StdEncoding.EncodeToString(audio)
			}
		}

		elapsed := time.Since(started).Seconds()

		gen := sqlite.Generation{
			UserID: userID,
			Prompt: req.Prompt,
			Output: output,
			DNA:    fingerprint,
			Parameters: sqlite.Parameters{
				Temperature: temperature,
				TopP:        topP,
				Model:       model,
				Persona:     req.Persona,
			},
			ModelUsed:      model,
			GenerationTime: elapsed,
		}
		if err := store.SaveGeneration(ctx, gen); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to persist generation", "user_id", userID, "error", err)
			metrics.RecordGeneration(model, elapsed, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := store.IncrementUsage(ctx, userID); err != nil {
			// The generation is already saved; a counter glitch is not
			// worth failing the response over.
			slog.Warn("Failed to increment usage", "user_id", userID, "error", err)
		}

		metrics.RecordGeneration(model, elapsed, true)
		slog.Info("Generation completed", "user_id", userID, "model", model, "seconds", elapsed)

		c.JSON(http.StatusOK, datatypes.TripResponse{
			Output:         output,
			DNA:            fingerprint,
			UserID:         userID,
			GenerationTime: elapsed,
			Voice:          voiceB64,
		})
	}
}

// synthesizeCached returns MP3 bytes for text, consulting the audio
// cache first. Errors are logged and swallowed; callers treat empty
// output as "no voice".
func synthesizeCached(ctx context.Context, synth Synthesizer, cache AudioCache, text, lang string) []byte {
	metrics := observability.DefaultMetrics
	voiceName := voice.VoiceFor(lang)

	// Long generations are narrated up to the synthesis limit. The cut
	// backs off to a rune boundary so accented output stays intact.
	if len(text) > voice.MaxTextLength {
		cut := voice.MaxTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	if cache != nil {
		if audio, ok := cache.Get(text, voiceName); ok {
			metrics.RecordVoiceCache(true)
			return audio
		}
		metrics.RecordVoiceCache(false)
	}

	audio, err := synth.Synthesize(ctx, text, lang)
	if err != nil {
		slog.Error("Voice synthesis failed", "lang", lang, "error", err)
		metrics.RecordVoiceSynthesis(false)
		return nil
	}
	metrics.RecordVoiceSynthesis(true)

	if cache != nil {
		if err := cache.Set(text, voiceName, audio); err != nil {
			slog.Warn("Failed to cache synthesized audio", "error", err)
		}
	}
	return audio
}
