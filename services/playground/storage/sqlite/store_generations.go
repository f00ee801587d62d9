// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Parameters is the tuning snapshot stored alongside a generation.
// The JSON field names match what the UI has always stored.
type Parameters struct {
	Temperature float64 `json:"temp"`
	TopP        float64 `json:"top_p"`
	Model       string  `json:"model"`
	Persona     string  `json:"persona"`
}

// Generation is one completed text generation with its DNA fingerprint.
type Generation struct {
	UserID         string
	Prompt         string
	Output         string
	DNA            string
	Parameters     Parameters
	ModelUsed      string
	GenerationTime float64
	CreatedAt      string
}

// SaveGeneration appends a generation to the history.
func (s *Store) SaveGeneration(ctx context.Context, g Generation) error {
	params, err := json.Marshal(g.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO generations (user_id, prompt, output, dna, parameters, model_used, generation_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Prompt, g.Output, g.DNA, string(params), g.ModelUsed, g.GenerationTime)
	if err != nil {
		return fmt.Errorf("save generation: %w", err)
	}
	return nil
}

// History returns a user's most recent generations, newest first.
// Prompts are truncated to 100 characters for listing.
func (s *Store) History(ctx context.Context, userID string, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT prompt, output, dna, parameters, model_used, generation_time, created_at
		FROM generations
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []Generation
	for rows.Next() {
		var g Generation
		var prompt, output, dna, params, model, createdAt sql.NullString
		var genTime sql.NullFloat64
		if err := rows.Scan(&prompt, &output, &dna, &params, &model, &genTime, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		g.UserID = userID
		g.Prompt = truncate(prompt.String, 100)
		g.Output = output.String
		g.DNA = dna.String
		g.ModelUsed = model.String
		g.GenerationTime = genTime.Float64
		g.CreatedAt = createdAt.String
		if params.Valid && params.String != "" {
			if err := json.Unmarshal([]byte(params.String), &g.Parameters); err != nil {
				// Old rows may carry malformed parameter blobs; fall
				// back to the historical defaults instead of failing
				// the whole listing.
				g.Parameters = Parameters{Temperature: 1.3, TopP: 0.9, Model: "dolphin-phi:latest"}
			}
		}
		history = append(history, g)
	}
	return history, rows.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
