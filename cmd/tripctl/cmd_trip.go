// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// resolveServerURL applies flag > config > default precedence.
func resolveServerURL() string {
	if serverURL != "" {
		return strings.TrimRight(serverURL, "/")
	}
	if config.ServerURL != "" {
		return strings.TrimRight(config.ServerURL, "/")
	}
	return "http://localhost:12300"
}

func resolveUserID() string {
	if userID != "" {
		return userID
	}
	return config.UserID
}

// postJSON sends a request body and decodes the JSON response. Any
// HTTP status >= 400 is fatal with the server's error message printed.
func postJSON(path string, body map[string]any) map[string]any {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Could not encode request: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Post(resolveServerURL()+path, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Could not reach the playground server: %v", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(resolveServerURL() + path)
	if err != nil {
		log.Fatalf("Could not reach the playground server: %v", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) map[string]any {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var out map[string]any
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		log.Fatalf("Unexpected server response (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	if resp.StatusCode >= 400 {
		if msg, ok := out["error"].(string); ok {
			log.Fatalf("Server error (status %d): %s", resp.StatusCode, msg)
		}
		log.Fatalf("Server error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return out
}

func runTrip(cmd *cobra.Command, args []string) {
	body := map[string]any{
		"prompt":  strings.Join(args, " "),
		"user_id": resolveUserID(),
	}
	if model != "" {
		body["model"] = model
	} else if config.Model != "" {
		body["model"] = config.Model
	}
	if persona != "" {
		body["persona"] = persona
	}
	if temperature >= 0 {
		body["temp"] = temperature
	}
	if topP >= 0 {
		body["top_p"] = topP
	}

	out := postJSON("/trip", body)

	fmt.Println(out["output"])
	fmt.Println()
	fmt.Printf("DNA: %v\n", out["dna"])
	fmt.Printf("User: %v\n", out["user_id"])
}

func runRecreate(cmd *cobra.Command, args []string) {
	out := postJSON("/recreate", map[string]any{"dna": args[0]})

	fmt.Printf("Model:       %v\n", out["model"])
	fmt.Printf("Temperature: %v\n", out["temperature"])
	fmt.Printf("Top-p:       %v\n", out["top_p"])
	fmt.Printf("Note:        %v\n", out["note"])
}
