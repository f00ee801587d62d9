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
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/observability"
	"github.com/AleutianAI/TripLocal/services/voice"
)

// HandleVoice synthesizes standalone narration for a text snippet.
// Audio comes back base64-encoded so browser clients can play it from
// a data URL without a second request.
func HandleVoice(synth Synthesizer, cache AudioCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleVoice")
		defer span.End()

		var req datatypes.VoiceRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required (max 1000 characters)"})
			return
		}
		if synth == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "voice synthesis is not enabled"})
			return
		}

		voiceName := voice.VoiceFor(req.Lang)
		if cache != nil {
			if audio, ok := cache.Get(req.Text, voiceName); ok {
				observability.DefaultMetrics.RecordVoiceCache(true)
				c.JSON(http.StatusOK, gin.H{
					"audio":  base64.StdEncoding.EncodeToString(audio),
					"voice":  voiceName,
					"format": "mp3",
				})
				return
			}
			observability.DefaultMetrics.RecordVoiceCache(false)
		}

		audio, err := synth.Synthesize(ctx, req.Text, req.Lang)
		if err != nil {
			observability.DefaultMetrics.RecordVoiceSynthesis(false)
			slog.Error("Voice synthesis failed", "error", err, "lang", req.Lang)
			c.JSON(http.StatusBadGateway, gin.H{"error": "voice synthesis failed"})
			return
		}
		if cache != nil {
			if err := cache.Set(req.Text, voiceName, audio); err != nil {
				slog.Warn("Failed to cache audio", "error", err)
			}
		}

		observability.DefaultMetrics.RecordVoiceSynthesis(true)
		c.JSON(http.StatusOK, gin.H{
			"audio":  base64.StdEncoding.EncodeToString(audio),
			"voice":  voiceName,
			"format": "mp3",
		})
	}
}
