// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("texto", "pt-BR-FranciscaNeural")
	assert.False(t, ok, "empty cache must miss")

	require.NoError(t, c.Set("texto", "pt-BR-FranciscaNeural", []byte("mp3")))

	audio, ok := c.Get("texto", "pt-BR-FranciscaNeural")
	require.True(t, ok)
	assert.Equal(t, []byte("mp3"), audio)
}

func TestCache_KeyedByTextAndVoice(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Set("texto", "pt-BR-FranciscaNeural", []byte("br")))

	_, ok := c.Get("texto", "en-US-AriaNeural")
	assert.False(t, ok, "same text under a different voice is a distinct entry")

	_, ok = c.Get("outro texto", "pt-BR-FranciscaNeural")
	assert.False(t, ok)
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("a", "v"), Key("a", "v"))
	assert.NotEqual(t, Key("a", "v"), Key("b", "v"))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}
