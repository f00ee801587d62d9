// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sqlite provides SQLite-backed persistence for the playground:
// users and usage counters, generation history with DNA fingerprints,
// community prompts, and sponsors.
//
// The store is an explicit handle passed to handler constructors; there
// is no package-level connection. database/sql pooling makes all
// methods safe for concurrent use.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT UNIQUE NOT NULL,
	username TEXT,
	daily_usage INTEGER DEFAULT 0,
	monthly_usage INTEGER DEFAULT 0,
	total_usage INTEGER DEFAULT 0,
	favorite_model TEXT DEFAULT 'dolphin-phi:latest',
	last_reset DATE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS generations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT,
	prompt TEXT,
	output TEXT,
	dna TEXT,
	parameters TEXT,
	model_used TEXT,
	generation_time REAL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS community_prompts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT,
	title TEXT NOT NULL,
	prompt TEXT NOT NULL,
	description TEXT,
	tags TEXT,
	likes INTEGER DEFAULT 0,
	downloads INTEGER DEFAULT 0,
	is_featured BOOLEAN DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sponsors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	tier TEXT NOT NULL,
	logo_url TEXT,
	website_url TEXT,
	message TEXT,
	is_active BOOLEAN DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Store provides SQLite-backed persistence for playground records.
type Store struct {
	sqlDB *sql.DB
}

// DB returns the underlying sql.DB instance.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Open opens a SQLite store at the provided path, creating the schema
// and seeding sample community content on first run.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := store.seed(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed data: %w", err)
	}

	slog.Info("SQLite store ready", "path", cleanPath)
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) migrate() error {
	_, err := s.sqlDB.Exec(schema)
	return err
}

// seed inserts the sample community prompts and sponsors the playground
// ships with, once, so a fresh install has something to browse.
func (s *Store) seed() error {
	var count int
	if err := s.sqlDB.QueryRow("SELECT COUNT(*) FROM community_prompts").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		samples := []struct {
			title, prompt, description, tags string
			likes                            int
		}{
			{"Cosmic Dreams", "Digital dragons soaring through cyberpunk cityscapes made of flowing data streams", "A vivid journey through digital realms", "cosmic,dragons,cyberpunk", 45},
			{"Quantum Poetry", "Quantum cats phasing between parallel dimensions of pure mathematics", "Explore the intersection of quantum physics and feline grace", "quantum,cats,mathematics", 38},
			{"Neon Nature", "Neon forests growing in abandoned space stations, their leaves glowing with bioluminescence", "Nature reclaiming technology in spectacular fashion", "neon,forest,space", 52},
			{"Memory Rain", "Holographic butterflies dancing in virtual rain that tastes like memories", "A synesthetic experience of digital nostalgia", "holographic,butterflies,memories", 41},
			{"Crystal Symphony", "Crystalline mountains singing electronic melodies that reshape reality itself", "Mountains as living instruments of reality manipulation", "crystal,mountains,music", 33},
		}
		for _, p := range samples {
			if _, err := s.sqlDB.Exec(
				"INSERT INTO community_prompts (title, prompt, description, tags, likes) VALUES (?, ?, ?, ?, ?)",
				p.title, p.prompt, p.description, p.tags, p.likes,
			); err != nil {
				return err
			}
		}
	}

	if err := s.sqlDB.QueryRow("SELECT COUNT(*) FROM sponsors").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		sponsors := []struct {
			name, tier, logoURL, websiteURL, message string
		}{
			{"Open AI Foundation", "platinum", "", "https://example.org", "Supporting open-source AI creativity"},
			{"Tech for Good", "gold", "", "https://techforgood.com", "Empowering creative AI applications"},
			{"Community Builder", "silver", "", "https://community.dev", "Building the future of AI collaboration"},
		}
		for _, sp := range sponsors {
			if _, err := s.sqlDB.Exec(
				"INSERT INTO sponsors (name, tier, logo_url, website_url, message) VALUES (?, ?, ?, ?, ?)",
				sp.name, sp.tier, sp.logoURL, sp.websiteURL, sp.message,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// execAffectingOne runs stmt and reports sql.ErrNoRows when nothing
// matched, so callers can map it to a not-found response.
func (s *Store) execAffectingOne(ctx context.Context, stmt string, args ...any) error {
	res, err := s.sqlDB.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
