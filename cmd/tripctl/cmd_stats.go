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
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func runHistory(cmd *cobra.Command, args []string) {
	user := resolveUserID()
	if user == "" {
		log.Fatal("A user id is required: pass --user or set user_id in tripctl.yaml")
	}

	out := getJSON(fmt.Sprintf("/history/%s?limit=%d", user, historyLimit))

	entries, _ := out["history"].([]any)
	if len(entries) == 0 {
		fmt.Println("No generations yet.")
		return
	}

	for i, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("%d. [%v] %v\n", i+1, entry["timestamp"], entry["prompt"])
		fmt.Printf("   DNA: %v  model: %v\n", entry["dna"], entry["model_used"])
	}
}

func runStats(cmd *cobra.Command, args []string) {
	user := resolveUserID()
	if user == "" {
		log.Fatal("A user id is required: pass --user or set user_id in tripctl.yaml")
	}

	out := getJSON("/user/stats/" + user)

	fmt.Printf("Daily usage:   %v\n", out["daily_usage"])
	fmt.Printf("Monthly usage: %v\n", out["monthly_usage"])
	fmt.Printf("Total usage:   %v\n", out["total_usage"])
	fmt.Printf("Limits:        unlimited (open source)\n")
}
