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
	"fmt"
	"strings"
)

// CommunityPrompt is a prompt shared to the public gallery.
type CommunityPrompt struct {
	ID          int64
	UserID      string
	Title       string
	Prompt      string
	Description string
	Tags        []string
	Likes       int
	Downloads   int
	IsFeatured  bool
	CreatedAt   string
}

// Sponsor is a project sponsor shown on the landing page.
type Sponsor struct {
	Name       string
	Tier       string
	LogoURL    string
	WebsiteURL string
	Message    string
}

// ListCommunityPrompts returns the gallery ordering: featured first,
// then most liked.
func (s *Store) ListCommunityPrompts(ctx context.Context, limit int) ([]CommunityPrompt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, title, prompt, description, tags, likes, downloads, is_featured, created_at
		FROM community_prompts
		ORDER BY is_featured DESC, likes DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query community prompts: %w", err)
	}
	defer rows.Close()

	var prompts []CommunityPrompt
	for rows.Next() {
		var p CommunityPrompt
		var description, tags, createdAt sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Prompt, &description, &tags, &p.Likes, &p.Downloads, &p.IsFeatured, &createdAt); err != nil {
			return nil, fmt.Errorf("scan community prompt: %w", err)
		}
		p.Description = description.String
		p.CreatedAt = createdAt.String
		if tags.String != "" {
			p.Tags = strings.Split(tags.String, ",")
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// ShareCommunityPrompt adds a prompt to the gallery and returns its id.
func (s *Store) ShareCommunityPrompt(ctx context.Context, p CommunityPrompt) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO community_prompts (user_id, title, prompt, description, tags)
		VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Prompt, p.Description, strings.Join(p.Tags, ","))
	if err != nil {
		return 0, fmt.Errorf("share prompt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("share prompt id: %w", err)
	}
	return id, nil
}

// LikeCommunityPrompt increments a prompt's like counter.
// Returns sql.ErrNoRows if the prompt does not exist.
func (s *Store) LikeCommunityPrompt(ctx context.Context, id int64) error {
	return s.execAffectingOne(ctx,
		"UPDATE community_prompts SET likes = likes + 1 WHERE id = ?", id)
}

// DownloadCommunityPrompt increments a prompt's download counter.
// Returns sql.ErrNoRows if the prompt does not exist.
func (s *Store) DownloadCommunityPrompt(ctx context.Context, id int64) error {
	return s.execAffectingOne(ctx,
		"UPDATE community_prompts SET downloads = downloads + 1 WHERE id = ?", id)
}

// ActiveSponsors returns active sponsors ordered by tier rank
// (platinum, gold, silver, bronze).
func (s *Store) ActiveSponsors(ctx context.Context) ([]Sponsor, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT name, tier, logo_url, website_url, message
		FROM sponsors
		WHERE is_active = TRUE
		ORDER BY
			CASE tier
				WHEN 'platinum' THEN 1
				WHEN 'gold' THEN 2
				WHEN 'silver' THEN 3
				WHEN 'bronze' THEN 4
				ELSE 5
			END`)
	if err != nil {
		return nil, fmt.Errorf("query sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []Sponsor
	for rows.Next() {
		var sp Sponsor
		var logoURL, websiteURL, message sql.NullString
		if err := rows.Scan(&sp.Name, &sp.Tier, &logoURL, &websiteURL, &message); err != nil {
			return nil, fmt.Errorf("scan sponsor: %w", err)
		}
		sp.LogoURL = logoURL.String
		sp.WebsiteURL = websiteURL.String
		sp.Message = message.String
		sponsors = append(sponsors, sp)
	}
	return sponsors, rows.Err()
}
