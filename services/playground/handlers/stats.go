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
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
)

// HandleUserStats returns usage counters for a user. Limits are -1
// because the playground is free and open source.
func HandleUserStats(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleUserStats")
		defer span.End()

		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		user, err := store.GetOrCreateUser(ctx, userID)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to load user", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user stats"})
			return
		}

		c.JSON(http.StatusOK, datatypes.UserStatsResponse{
			DailyUsage:      user.DailyUsage,
			MonthlyUsage:    user.MonthlyUsage,
			TotalUsage:      user.TotalUsage,
			DailyLimit:      -1,
			MonthlyLimit:    -1,
			AvailableModels: datatypes.AvailableModels,
			FeaturesEnabled: datatypes.Features,
			IsOpenSource:    true,
		})
	}
}

// HandleHistory lists a user's recent generations, newest first.
func HandleHistory(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleHistory")
		defer span.End()

		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		history, err := store.History(ctx, userID, limit)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to load history", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}

		entries := make([]datatypes.HistoryEntry, 0, len(history))
		for _, g := range history {
			entries = append(entries, datatypes.HistoryEntry{
				Prompt: g.Prompt,
				Output: g.Output,
				DNA:    g.DNA,
				Parameters: map[string]any{
					"temp":    g.Parameters.Temperature,
					"top_p":   g.Parameters.TopP,
					"model":   g.Parameters.Model,
					"persona": g.Parameters.Persona,
				},
				ModelUsed:      g.ModelUsed,
				GenerationTime: g.GenerationTime,
				Timestamp:      g.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"history": entries, "total": len(entries)})
	}
}

// HandleAnalytics returns the public usage dashboard.
func HandleAnalytics(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAnalytics")
		defer span.End()

		a, err := store.Analytics(ctx)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to compute analytics", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":       a.TotalUsers,
			"total_generations": a.TotalGenerations,
			"popular_models":    a.PopularModels,
			"recent_activity":   a.RecentActivity,
			"open_source":       true,
		})
	}
}
