// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOllamaClient(serverURL string) *OllamaClient {
	return &OllamaClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL,
		model:      "dolphin-phi:latest",
	}
}

func TestOllamaGenerate_Success(t *testing.T) {
	var captured ollamaGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Model:    captured.Model,
			Response: "neon forests hum in the dark",
			Done:     true,
		})
	}))
	defer server.Close()

	client := newTestOllamaClient(server.URL)
	temp := 1.7
	topP := 0.8
	out, err := client.Generate(context.Background(), "describe a neon forest", GenerationParams{
		Model:       "mistral:latest",
		Persona:     "you are a dream narrator",
		Temperature: &temp,
		TopP:        &topP,
	})
	require.NoError(t, err)
	assert.Equal(t, "neon forests hum in the dark", out)

	assert.Equal(t, "mistral:latest", captured.Model)
	assert.Equal(t, "describe a neon forest", captured.Prompt)
	assert.Equal(t, "you are a dream narrator", captured.System)
	assert.False(t, captured.Stream)
	assert.Equal(t, 1.7, captured.Options["temperature"])
	assert.Equal(t, 0.8, captured.Options["top_p"])
	// Max tokens falls back to the playground default.
	assert.Equal(t, float64(DefaultMaxTokens), captured.Options["num_predict"])
}

func TestOllamaGenerate_DefaultsApplied(t *testing.T) {
	var captured ollamaGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	client := newTestOllamaClient(server.URL)
	_, err := client.Generate(context.Background(), "hello", GenerationParams{})
	require.NoError(t, err)

	assert.Equal(t, "dolphin-phi:latest", captured.Model)
	assert.Equal(t, DefaultTemperature, captured.Options["temperature"])
	assert.Equal(t, DefaultTopP, captured.Options["top_p"])
}

func TestOllamaGenerate_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "model 'missing:latest' not found"})
	}))
	defer server.Close()

	client := newTestOllamaClient(server.URL)
	_, err := client.Generate(context.Background(), "hello", GenerationParams{Model: "missing:latest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama pull missing:latest")
}

func TestOllamaGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestOllamaClient(server.URL)
	_, err := client.Generate(context.Background(), "hello", GenerationParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOllamaGenerate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestOllamaClient(server.URL)
	_, err := client.Generate(ctx, "hello", GenerationParams{})
	require.Error(t, err)
}
