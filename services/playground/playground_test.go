// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package playground

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyConfigDefaults(t *testing.T) {
	cfg := applyConfigDefaults(Config{})

	assert.Equal(t, 12300, cfg.Port)
	assert.Equal(t, "ollama", cfg.LLMBackend)
	assert.Equal(t, "./playground.db", cfg.DBPath)
	assert.Equal(t, "./audio-cache", cfg.AudioCachePath)
}

func TestApplyConfigDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := applyConfigDefaults(Config{Port: 9999, LLMBackend: "openai"})

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "openai", cfg.LLMBackend)
}

func TestNewServiceServesHealth(t *testing.T) {
	dir := t.TempDir()
	svc, err := New(Config{
		DBPath:  filepath.Join(dir, "playground.db"),
		GinMode: "test",
		// VoiceEnabled off keeps the test free of badger directories.
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	svc.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
