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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	serverURL      string
	userID         string
	model          string
	persona        string
	temperature    float64
	topP           float64
	crossoverPoint int
	mutationRate   float64
	historyLimit   int

	rootCmd = &cobra.Command{
		Use:   "tripctl",
		Short: "A cli for the creative-text playground and its DNA fingerprints",
		Long: `tripctl talks to a running playground server to generate
				creative text, and to decode, remix, mutate, and compare
				the DNA fingerprints of past generations.`,
	}

	// --- Generation ---
	tripCmd = &cobra.Command{
		Use:   "trip [prompt]",
		Short: "Generate creative text and print its DNA fingerprint",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTrip, // Defined in cmd_trip.go
	}
	recreateCmd = &cobra.Command{
		Use:   "recreate [dna]",
		Short: "Decode a DNA fingerprint back into estimated parameters",
		Args:  cobra.ExactArgs(1),
		Run:   runRecreate, // Defined in cmd_trip.go
	}

	// --- DNA operations ---
	dnaCmd = &cobra.Command{
		Use:   "dna",
		Short: "Operate on DNA fingerprints",
	}
	remixCmd = &cobra.Command{
		Use:   "remix [dna_a] [dna_b]",
		Short: "Splice two DNA fingerprints at a crossover point",
		Args:  cobra.ExactArgs(2),
		Run:   runRemix, // Defined in cmd_dna.go
	}
	mutateCmd = &cobra.Command{
		Use:   "mutate [dna]",
		Short: "Randomly mutate a DNA fingerprint",
		Args:  cobra.ExactArgs(1),
		Run:   runMutate, // Defined in cmd_dna.go
	}
	analyzeCmd = &cobra.Command{
		Use:   "analyze [dna_a] [dna_b]",
		Short: "Score two DNA fingerprints for remix compatibility",
		Args:  cobra.ExactArgs(2),
		Run:   runAnalyze, // Defined in cmd_dna.go
	}

	// --- Account ---
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List your recent generations",
		Run:   runHistory, // Defined in cmd_stats.go
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show your usage counters",
		Run:   runStats, // Defined in cmd_stats.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"Playground server URL (default http://localhost:12300)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "",
		"User id sent with requests")

	tripCmd.Flags().StringVar(&model, "model", "", "Model to generate with")
	tripCmd.Flags().StringVar(&persona, "persona", "", "Persona for the system prompt")
	tripCmd.Flags().Float64Var(&temperature, "temp", -1, "Sampling temperature (0-2)")
	tripCmd.Flags().Float64Var(&topP, "top-p", -1, "Nucleus sampling cutoff (0-1)")

	remixCmd.Flags().IntVar(&crossoverPoint, "crossover", 0,
		"Crossover point (1-63, default 32)")
	mutateCmd.Flags().Float64Var(&mutationRate, "rate", -1,
		"Per-character mutation probability (default 0.1)")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of entries to show")

	dnaCmd.AddCommand(remixCmd, mutateCmd, analyzeCmd)
	rootCmd.AddCommand(tripCmd, recreateCmd, dnaCmd, historyCmd, statsCmd)
}
