// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/TripLocal/services/llm"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockLLMClient struct{}

func (m *mockLLMClient) Generate(_ context.Context, _ string, _ llm.GenerationParams) (string, error) {
	return "mock response", nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "playground.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	SetupRoutes(router, &mockLLMClient{}, store, nil, nil)
	return router
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t)

	expected := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"POST", "/trip"},
		{"POST", "/recreate"},
		{"POST", "/voice"},
		{"POST", "/dna/remix"},
		{"POST", "/dna/mutate"},
		{"POST", "/dna/compatibility"},
		{"POST", "/dna/persona"},
		{"GET", "/user/stats/:user_id"},
		{"GET", "/history/:user_id"},
		{"GET", "/analytics"},
		{"GET", "/community/prompts"},
		{"POST", "/community/prompts/:id/like"},
		{"POST", "/community/prompts/:id/download"},
		{"POST", "/share/prompt"},
		{"GET", "/sponsors"},
	}

	registered := router.Routes()
	for _, want := range expected {
		found := false
		for _, r := range registered {
			if r.Method == want.method && r.Path == want.path {
				found = true
				break
			}
		}
		assert.True(t, found, "route %s %s not registered", want.method, want.path)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
