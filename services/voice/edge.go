// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package voice synthesizes speech through the Microsoft Edge read-aloud
// service. The service speaks a websocket protocol: the client sends a
// speech.config message and an SSML request, then collects binary frames
// tagged Path:audio until turn.end arrives. Output is MP3.
package voice

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MaxTextLength bounds a single synthesis request, enforced at the HTTP
// boundary as well.
const MaxTextLength = 1000

const (
	edgeEndpoint     = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	edgeTrustedToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	outputFormat     = "audio-24khz-48kbitrate-mono-mp3"
)

// voiceMap picks a neural voice per language tag. Portuguese first: the
// playground UI defaults to pt-BR.
var voiceMap = map[string]string{
	"pt-BR": "pt-BR-FranciscaNeural",
	"pt-PT": "pt-PT-RaquelNeural",
	"en-US": "en-US-AriaNeural",
	"es-ES": "es-ES-ElviraNeural",
	"fr-FR": "fr-FR-DeniseNeural",
}

const defaultLang = "pt-BR"

// VoiceFor resolves a language tag to an Edge neural voice, falling back
// to the pt-BR default for unknown tags.
func VoiceFor(lang string) string {
	if v, ok := voiceMap[lang]; ok {
		return v
	}
	return voiceMap[defaultLang]
}

// Languages lists the supported language tags.
func Languages() []string {
	langs := make([]string, 0, len(voiceMap))
	for lang := range voiceMap {
		langs = append(langs, lang)
	}
	return langs
}

// Synthesizer converts text to MP3 audio via the Edge TTS websocket.
//
// Safe for concurrent use; each Synthesize call opens its own
// connection.
type Synthesizer struct {
	endpoint string
	dialer   *websocket.Dialer
}

// NewSynthesizer returns a Synthesizer against the public Edge endpoint.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		endpoint: edgeEndpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 15 * time.Second,
		},
	}
}

// Synthesize renders text as MP3 audio using the voice mapped to lang.
//
// The call completes when the service signals turn.end; the context
// bounds the whole exchange.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	if len(text) > MaxTextLength {
		return nil, fmt.Errorf("text too long (max %d characters)", MaxTextLength)
	}

	voice := VoiceFor(lang)
	slog.Debug("Synthesizing voice", "voice", voice, "text_len", len(text))

	connID := strings.ReplaceAll(uuid.NewString(), "-", "")
	url := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s", s.endpoint, edgeTrustedToken, connID)

	header := http.Header{}
	header.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")
	header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	conn, resp, err := s.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("edge tts handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("edge tts dial failed: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	timestamp := time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")

	config := fmt.Sprintf(
		"X-Timestamp:%s\r\nContent-Type:application/json; charset=utf-8\r\nPath:speech.config\r\n\r\n"+
			`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":"%s"}}}}`,
		timestamp, outputFormat)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(config)); err != nil {
		return nil, fmt.Errorf("failed to send speech config: %w", err)
	}

	requestID := strings.ReplaceAll(uuid.NewString(), "-", "")
	ssml := buildSSML(text, voice)
	request := fmt.Sprintf(
		"X-RequestId:%s\r\nContent-Type:application/ssml+xml\r\nX-Timestamp:%s\r\nPath:ssml\r\n\r\n%s",
		requestID, timestamp, ssml)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(request)); err != nil {
		return nil, fmt.Errorf("failed to send ssml request: %w", err)
	}

	var audio bytes.Buffer
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("edge tts read failed: %w", err)
		}
		switch msgType {
		case websocket.BinaryMessage:
			chunk, ok := audioChunk(data)
			if ok {
				audio.Write(chunk)
			}
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				if audio.Len() == 0 {
					return nil, fmt.Errorf("edge tts returned no audio")
				}
				slog.Debug("Voice synthesis complete", "bytes", audio.Len())
				return audio.Bytes(), nil
			}
		}
	}
}

// audioChunk extracts the audio payload from a binary frame. The frame
// starts with a 2-byte big-endian header length, then the text headers,
// then the payload; frames without Path:audio carry metadata only.
func audioChunk(data []byte) ([]byte, bool) {
	if len(data) < 2 {
		return nil, false
	}
	headerLen := int(data[0])<<8 | int(data[1])
	if len(data) < 2+headerLen {
		return nil, false
	}
	header := data[2 : 2+headerLen]
	if !bytes.Contains(header, []byte("Path:audio")) {
		return nil, false
	}
	return data[2+headerLen:], true
}

// buildSSML wraps escaped text in the minimal SSML envelope Edge expects.
func buildSSML(text, voice string) string {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(text)) // bytes.Buffer writes cannot fail
	return fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'><voice name='%s'>%s</voice></speak>`,
		voice, escaped.String())
}
