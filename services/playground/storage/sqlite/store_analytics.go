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
	"fmt"
)

// ModelCount is a model's share of all generations.
type ModelCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// DailyCount is one day's generation volume.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Analytics aggregates playground-wide usage.
type Analytics struct {
	TotalUsers       int
	TotalGenerations int
	PopularModels    []ModelCount
	RecentActivity   []DailyCount
}

// Analytics computes the public usage dashboard: totals, the five most
// used models, and per-day volume over the last week.
func (s *Store) Analytics(ctx context.Context) (Analytics, error) {
	var a Analytics

	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&a.TotalUsers); err != nil {
		return Analytics{}, fmt.Errorf("count users: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM generations").Scan(&a.TotalGenerations); err != nil {
		return Analytics{}, fmt.Errorf("count generations: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT model_used, COUNT(*) as count
		FROM generations
		WHERE model_used IS NOT NULL
		GROUP BY model_used
		ORDER BY count DESC
		LIMIT 5`)
	if err != nil {
		return Analytics{}, fmt.Errorf("query popular models: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mc ModelCount
		if err := rows.Scan(&mc.Model, &mc.Count); err != nil {
			return Analytics{}, fmt.Errorf("scan popular model: %w", err)
		}
		a.PopularModels = append(a.PopularModels, mc)
	}
	if err := rows.Err(); err != nil {
		return Analytics{}, err
	}

	activity, err := s.sqlDB.QueryContext(ctx, `
		SELECT DATE(created_at) as date, COUNT(*) as count
		FROM generations
		WHERE created_at >= datetime('now', '-7 days')
		GROUP BY DATE(created_at)
		ORDER BY date DESC`)
	if err != nil {
		return Analytics{}, fmt.Errorf("query recent activity: %w", err)
	}
	defer activity.Close()
	for activity.Next() {
		var dc DailyCount
		if err := activity.Scan(&dc.Date, &dc.Count); err != nil {
			return Analytics{}, fmt.Errorf("scan recent activity: %w", err)
		}
		a.RecentActivity = append(a.RecentActivity, dc)
	}
	return a, activity.Err()
}
