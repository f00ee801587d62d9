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

	"github.com/spf13/cobra"
)

func runRemix(cmd *cobra.Command, args []string) {
	body := map[string]any{"dna_a": args[0], "dna_b": args[1]}
	if crossoverPoint > 0 {
		body["crossover_point"] = crossoverPoint
	}

	out := postJSON("/dna/remix", body)
	fmt.Printf("Remixed DNA: %v\n", out["dna"])
}

func runMutate(cmd *cobra.Command, args []string) {
	body := map[string]any{"dna": args[0]}
	if mutationRate >= 0 {
		body["mutation_rate"] = mutationRate
	}

	out := postJSON("/dna/mutate", body)
	fmt.Printf("Mutated DNA: %v\n", out["dna"])
}

func runAnalyze(cmd *cobra.Command, args []string) {
	out := postJSON("/dna/compatibility", map[string]any{
		"dna_a": args[0],
		"dna_b": args[1],
	})

	if msg, ok := out["error"].(string); ok && msg != "" {
		fmt.Printf("Analysis failed: %s\n", msg)
		return
	}

	fmt.Printf("Similarity:            %v%%\n", out["similarity_percentage"])
	fmt.Printf("Differences:           %v\n", out["differences"])
	fmt.Printf("Compatibility:         %v\n", out["compatibility"])
	fmt.Printf("Recommended crossover: %v\n", out["recommended_crossover"])
}
