// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/TripLocal/services/llm"
	"github.com/AleutianAI/TripLocal/services/playground/handlers"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
)

// SetupRoutes wires every playground endpoint onto the router. The
// paths are flat because existing web clients call them that way.
func SetupRoutes(router *gin.Engine, llmClient llm.Client, store *sqlite.Store,
	synth handlers.Synthesizer, cache handlers.AudioCache) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/trip", handlers.HandleTrip(llmClient, store, synth, cache))
	router.POST("/recreate", handlers.HandleRecreate())
	router.POST("/voice", handlers.HandleVoice(synth, cache))

	// DNA fingerprint operations
	dnaOps := router.Group("/dna")
	{
		dnaOps.POST("/remix", handlers.HandleRemix())
		dnaOps.POST("/mutate", handlers.HandleMutate())
		dnaOps.POST("/compatibility", handlers.HandleCompatibility())
		dnaOps.POST("/persona", handlers.HandlePersona())
	}

	router.GET("/user/stats/:user_id", handlers.HandleUserStats(store))
	router.GET("/history/:user_id", handlers.HandleHistory(store))
	router.GET("/analytics", handlers.HandleAnalytics(store))

	// Community gallery
	community := router.Group("/community")
	{
		community.GET("/prompts", handlers.HandleCommunityPrompts(store))
		community.POST("/prompts/:id/like", handlers.HandleLikePrompt(store))
		community.POST("/prompts/:id/download", handlers.HandleDownloadPrompt(store))
	}
	router.POST("/share/prompt", handlers.HandleSharePrompt(store))
	router.GET("/sponsors", handlers.HandleSponsors(store))
}
