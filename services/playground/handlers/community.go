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
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
)

// HandleCommunityPrompts lists the shared prompt gallery, featured
// entries first.
func HandleCommunityPrompts(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleCommunityPrompts")
		defer span.End()

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		prompts, err := store.ListCommunityPrompts(ctx, limit)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to list community prompts", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load prompts"})
			return
		}

		out := make([]gin.H, 0, len(prompts))
		for _, p := range prompts {
			out = append(out, gin.H{
				"id":          p.ID,
				"title":       p.Title,
				"prompt":      p.Prompt,
				"description": p.Description,
				"tags":        p.Tags,
				"likes":       p.Likes,
				"downloads":   p.Downloads,
				"is_featured": p.IsFeatured,
				"created_at":  p.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"prompts": out, "total": len(out)})
	}
}

// HandleSharePrompt publishes a prompt to the gallery.
func HandleSharePrompt(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleSharePrompt")
		defer span.End()

		var req datatypes.SharePromptRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and prompt are required"})
			return
		}

		id, err := store.ShareCommunityPrompt(ctx, sqlite.CommunityPrompt{
			UserID:      req.UserID,
			Title:       req.Title,
			Prompt:      req.Prompt,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to share prompt", "error", err, "user_id", req.UserID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share prompt"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      id,
			"message": "Prompt shared with the community",
		})
	}
}

// HandleLikePrompt bumps a gallery prompt's like counter.
func HandleLikePrompt(store *sqlite.Store) gin.HandlerFunc {
	return promptCounter(store.LikeCommunityPrompt, "HandleLikePrompt", "like")
}

// HandleDownloadPrompt bumps a gallery prompt's download counter.
func HandleDownloadPrompt(store *sqlite.Store) gin.HandlerFunc {
	return promptCounter(store.DownloadCommunityPrompt, "HandleDownloadPrompt", "download")
}

func promptCounter(bump func(ctx context.Context, id int64) error, spanName, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), spanName)
		defer span.End()

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt id"})
			return
		}
		if err := bump(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
				return
			}
			span.RecordError(err)
			slog.Error("Failed to update prompt counter", "action", action, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update prompt"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": action + " recorded"})
	}
}

// HandleSponsors returns the active sponsor list ordered by tier.
func HandleSponsors(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleSponsors")
		defer span.End()

		sponsors, err := store.ActiveSponsors(ctx)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to list sponsors", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sponsors"})
			return
		}

		out := make([]gin.H, 0, len(sponsors))
		for _, s := range sponsors {
			out = append(out, gin.H{
				"name":        s.Name,
				"tier":        s.Tier,
				"logo_url":    s.LogoURL,
				"website_url": s.WebsiteURL,
				"message":     s.Message,
			})
		}
		c.JSON(http.StatusOK, gin.H{"sponsors": out})
	}
}
