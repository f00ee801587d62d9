// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cache provides a BadgerDB-backed audio cache for voice
// synthesis. Edge TTS round trips cost seconds; identical text+voice
// pairs are common (users replay their generations), so synthesized MP3
// bytes are kept locally with a TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Config holds configuration for the audio cache.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// TTL is how long a cached clip stays valid. Default: 24h.
	TTL time.Duration

	// Logger receives BadgerDB's internal logging. If nil, Badger
	// logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig(path string) Config {
	return Config{
		Path: path,
		TTL:  24 * time.Hour,
	}
}

// InMemoryConfig returns configuration optimized for testing.
func InMemoryConfig() Config {
	return Config{
		InMemory: true,
		TTL:      time.Minute,
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Cache is a TTL'd audio cache keyed by text and voice.
//
// Safe for concurrent use; Badger handles its own locking.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the cache described by cfg.
func Open(cfg Config) (*Cache, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("cache path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open audio cache: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the underlying BadgerDB.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for a text+voice pair.
func Key(text, voice string) []byte {
	sum := sha256.Sum256([]byte(voice + "|" + text))
	return []byte("audio:" + hex.EncodeToString(sum[:]))
}

// Get returns the cached MP3 bytes for the pair, or ok=false on a miss.
func (c *Cache) Get(text, voice string) ([]byte, bool) {
	var audio []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(text, voice))
		if err != nil {
			return err
		}
		audio, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			slog.Warn("Audio cache read failed", "error", err)
		}
		return nil, false
	}
	return audio, true
}

// Set stores MP3 bytes for the pair with the configured TTL.
func (c *Cache) Set(text, voice string, audio []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(Key(text, voice), audio).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache audio: %w", err)
	}
	return nil
}
