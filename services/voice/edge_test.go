// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "pt-BR-FranciscaNeural", VoiceFor("pt-BR"))
	assert.Equal(t, "en-US-AriaNeural", VoiceFor("en-US"))
	assert.Equal(t, "pt-BR-FranciscaNeural", VoiceFor("xx-XX"), "unknown tags fall back to pt-BR")
}

func TestBuildSSML_EscapesText(t *testing.T) {
	ssml := buildSSML("dragons & <cats>", "en-US-AriaNeural")
	assert.Contains(t, ssml, "dragons &amp; &lt;cats&gt;")
	assert.Contains(t, ssml, "name='en-US-AriaNeural'")
	assert.NotContains(t, ssml, "<cats>")
}

func TestAudioChunk(t *testing.T) {
	t.Run("audio frame", func(t *testing.T) {
		header := []byte("X-RequestId:abc\r\nPath:audio\r\n")
		frame := append([]byte{byte(len(header) >> 8), byte(len(header))}, header...)
		frame = append(frame, []byte("mp3-bytes")...)

		chunk, ok := audioChunk(frame)
		require.True(t, ok)
		assert.Equal(t, []byte("mp3-bytes"), chunk)
	})

	t.Run("non-audio frame skipped", func(t *testing.T) {
		header := []byte("Path:turn.start\r\n")
		frame := append([]byte{byte(len(header) >> 8), byte(len(header))}, header...)
		_, ok := audioChunk(frame)
		assert.False(t, ok)
	})

	t.Run("truncated frame", func(t *testing.T) {
		_, ok := audioChunk([]byte{0x00})
		assert.False(t, ok)
	})
}

// fakeEdgeServer upgrades the connection, consumes the config and ssml
// messages, then replies with one audio frame and turn.end.
func fakeEdgeServer(t *testing.T) *httptest.Server {
	// The client sends the browser-extension Origin header the real
	// service expects, so the default same-origin check must be relaxed.
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("ConnectionId"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		_, config, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(config), "Path:speech.config")

		_, ssml, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(ssml), "Path:ssml")
		assert.Contains(t, string(ssml), "FranciscaNeural")

		header := []byte("Path:audio\r\n")
		frame := append([]byte{byte(len(header) >> 8), byte(len(header))}, header...)
		frame = append(frame, []byte("fake-mp3")...)
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, frame))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n")))
	}))
}

func TestSynthesize_CollectsAudio(t *testing.T) {
	server := fakeEdgeServer(t)
	defer server.Close()

	s := NewSynthesizer()
	s.endpoint = "ws" + strings.TrimPrefix(server.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	audio, err := s.Synthesize(ctx, "borboletas holográficas", "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-mp3"), audio)
}

func TestSynthesize_RejectsBadInput(t *testing.T) {
	s := NewSynthesizer()

	_, err := s.Synthesize(context.Background(), "", "pt-BR")
	assert.Error(t, err)

	_, err = s.Synthesize(context.Background(), strings.Repeat("x", MaxTextLength+1), "pt-BR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}
