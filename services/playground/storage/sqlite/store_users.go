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
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// User is a playground account keyed by the caller-supplied user_id.
// Usage counters are informational; the playground enforces no limits.
type User struct {
	ID            int64
	UserID        string
	Username      string
	DailyUsage    int
	MonthlyUsage  int
	TotalUsage    int
	FavoriteModel string
	CreatedAt     time.Time
}

// GetOrCreateUser fetches a user row, inserting a fresh one on first
// contact.
func (s *Store) GetOrCreateUser(ctx context.Context, userID string) (User, error) {
	user, err := s.getUser(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("lookup user %s: %w", userID, err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO users (user_id, daily_usage, monthly_usage, total_usage, last_reset)
		VALUES (?, 0, 0, 0, ?)`,
		userID, time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		return User{}, fmt.Errorf("create user %s: %w", userID, err)
	}
	slog.Info("Created new user", "user_id", userID)

	user, err = s.getUser(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("reload user %s: %w", userID, err)
	}
	return user, nil
}

func (s *Store) getUser(ctx context.Context, userID string) (User, error) {
	var u User
	var username sql.NullString
	var createdAt sql.NullString
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, user_id, username, daily_usage, monthly_usage, total_usage, favorite_model, created_at
		FROM users WHERE user_id = ?`, userID).
		Scan(&u.ID, &u.UserID, &username, &u.DailyUsage, &u.MonthlyUsage, &u.TotalUsage, &u.FavoriteModel, &createdAt)
	if err != nil {
		return User{}, err
	}
	u.Username = username.String
	if createdAt.Valid {
		if ts, parseErr := time.Parse("2006-01-02 15:04:05", createdAt.String); parseErr == nil {
			u.CreatedAt = ts
		}
	}
	return u, nil
}

// IncrementUsage bumps all usage counters for a user after a
// successful generation.
func (s *Store) IncrementUsage(ctx context.Context, userID string) error {
	err := s.execAffectingOne(ctx, `
		UPDATE users
		SET daily_usage = daily_usage + 1, monthly_usage = monthly_usage + 1, total_usage = total_usage + 1
		WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("increment usage for %s: %w", userID, err)
	}
	return nil
}
