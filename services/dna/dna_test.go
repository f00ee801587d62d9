// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dna

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate("digital dragons", 1.3, 0.9, "dolphin-phi:latest")
	second := Generate("digital dragons", 1.3, 0.9, "dolphin-phi:latest")

	assert.Equal(t, first, second, "identical parameters must produce identical DNA")
	assert.True(t, Validate(first))
}

func TestGenerate_ParameterSensitivity(t *testing.T) {
	base := Generate("digital dragons", 1.3, 0.9, "dolphin-phi:latest")

	variants := map[string]string{
		"prompt":      Generate("digital dragon", 1.3, 0.9, "dolphin-phi:latest"),
		"temperature": Generate("digital dragons", 1.4, 0.9, "dolphin-phi:latest"),
		"top_p":       Generate("digital dragons", 1.3, 0.8, "dolphin-phi:latest"),
		"model":       Generate("digital dragons", 1.3, 0.9, "mistral:latest"),
	}
	for field, got := range variants {
		assert.NotEqual(t, base, got, "changing %s must change the DNA", field)
	}
}

func TestGeneratePersona(t *testing.T) {
	traits := map[string]any{
		"tone":      "surreal",
		"verbosity": 3,
		"themes": map[string]any{
			"primary":   "neon",
			"secondary": "decay",
		},
	}
	first := GeneratePersona("oracle", traits)
	second := GeneratePersona("oracle", traits)

	require.True(t, Validate(first))
	assert.Equal(t, first, second)

	// The type tag keeps persona DNA disjoint from generation DNA
	// built over coincidentally equal content.
	assert.NotEqual(t, first, GeneratePersona("sibyl", traits))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"all hex letters", strings.Repeat("a", 64), true},
		{"mixed digest", Generate("p", 1.0, 0.9, "m"), true},
		{"non-hex character", strings.Repeat("g", 64), false},
		{"too short", strings.Repeat("a", 63), false},
		{"too long", strings.Repeat("a", 65), false},
		{"empty", "", false},
		{"uppercase rejected", strings.Repeat("A", 64), false},
		{"numeric-looking junk", "123", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Validate(tc.input))
		})
	}
}

func TestRemix_SinglePointCrossover(t *testing.T) {
	a := strings.Repeat("1", 64)
	b := strings.Repeat("2", 64)

	got, err := Remix(a, b, 32)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1", 32)+strings.Repeat("2", 32), got)
	assert.True(t, Validate(got))
}

func TestRemix_OutOfRangeCrossoverCoerced(t *testing.T) {
	a := strings.Repeat("1", 64)
	b := strings.Repeat("2", 64)

	want, err := Remix(a, b, DefaultCrossoverPoint)
	require.NoError(t, err)

	for _, point := range []int{0, -5, 64, 100} {
		got, err := Remix(a, b, point)
		require.NoError(t, err)
		assert.Equal(t, want, got, "crossover point %d should coerce to default", point)
	}
}

func TestRemix_InvalidInput(t *testing.T) {
	b := strings.Repeat("2", 64)

	_, err := Remix("not-hex", b, 32)
	assert.ErrorIs(t, err, ErrInvalidDNA)

	_, err = Remix(b, strings.Repeat("z", 64), 32)
	assert.ErrorIs(t, err, ErrInvalidDNA)
}

func TestMutate_ZeroRateIsIdentity(t *testing.T) {
	a := Generate("prompt", 1.3, 0.9, "mistral:latest")

	got, err := Mutate(a, 0.0)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestMutate_FullRateStaysWellFormed(t *testing.T) {
	a := strings.Repeat("1", 64)

	got, err := Mutate(a, 1.0)
	require.NoError(t, err)
	// Every position re-rolled; a position may land on the original
	// digit by chance, so only the format is asserted.
	assert.True(t, Validate(got))
}

func TestMutate_InvalidInput(t *testing.T) {
	_, err := Mutate("short", 0.5)
	assert.ErrorIs(t, err, ErrInvalidDNA)
}

func TestCompatibility_SelfComparison(t *testing.T) {
	a := Generate("prompt", 1.3, 0.9, "mistral:latest")

	report := Compatibility(a, a)
	assert.Empty(t, report.Error)
	assert.Equal(t, 100.0, report.SimilarityPercentage)
	assert.Equal(t, 0, report.Differences)
	assert.Equal(t, "High", report.Compatibility)
	assert.Equal(t, DefaultCrossoverPoint, report.RecommendedCrossover)
	assert.Equal(t, report.PatternsA, report.PatternsB)
}

func TestCompatibility_DisjointStrings(t *testing.T) {
	a := strings.Repeat("1", 64)
	b := strings.Repeat("2", 64)

	report := Compatibility(a, b)
	assert.Equal(t, 0.0, report.SimilarityPercentage)
	assert.Equal(t, 64, report.Differences)
	assert.Equal(t, "Low", report.Compatibility)
	assert.Equal(t, 16, report.RecommendedCrossover)
	assert.Equal(t, CharacterClasses{Numbers: 64}, report.PatternsA)
}

func TestCompatibility_BoundsAndHammingConsistency(t *testing.T) {
	a := Generate("one", 0.7, 0.9, "llama2:latest")
	b := Generate("two", 1.9, 0.5, "gpt-4")

	report := Compatibility(a, b)
	require.Empty(t, report.Error)
	assert.GreaterOrEqual(t, report.SimilarityPercentage, 0.0)
	assert.LessOrEqual(t, report.SimilarityPercentage, 100.0)

	raw := float64(64-report.Differences) / 64 * 100
	assert.Equal(t, math.Round(raw*100)/100, report.SimilarityPercentage)
}

func TestCompatibility_CharacterClasses(t *testing.T) {
	a := strings.Repeat("a", 32) + strings.Repeat("e", 32)
	b := strings.Repeat("b", 16) + strings.Repeat("f", 16) + strings.Repeat("0", 32)

	report := Compatibility(a, b)
	require.Empty(t, report.Error)
	assert.Equal(t, CharacterClasses{Vowels: 64}, report.PatternsA)
	assert.Equal(t, CharacterClasses{Consonants: 32, Numbers: 32}, report.PatternsB)
}

func TestCompatibility_SoftErrorOnInvalidInput(t *testing.T) {
	report := Compatibility("bogus", strings.Repeat("2", 64))
	assert.Equal(t, "Invalid DNA format", report.Error)
	assert.Zero(t, report.SimilarityPercentage)
	assert.Empty(t, report.Compatibility)
}

func TestDecode_Deterministic(t *testing.T) {
	d := Generate("prompt", 1.3, 0.9, "mistral:latest")

	first := Decode(d)
	second := Decode(d)
	assert.Equal(t, first, second)

	assert.GreaterOrEqual(t, first.Temperature, 0.1)
	assert.LessOrEqual(t, first.Temperature, 2.0)
	assert.GreaterOrEqual(t, first.TopP, 0.1)
	assert.LessOrEqual(t, first.TopP, 0.9)
	assert.NotEmpty(t, first.Model)
	assert.Equal(t, d, first.DNA)
	assert.NotEmpty(t, first.Note)
}

func TestDecode_ModelTable(t *testing.T) {
	tail := strings.Repeat("0", 63)

	cases := map[string]string{
		"0": "dolphin-phi:latest",
		"1": "llama2:latest",
		"2": "mistral:latest",
		"3": "gpt-4",
		"f": "dolphin-phi:latest", // unmapped prefix falls back
	}
	for prefix, want := range cases {
		est := Decode(prefix + tail)
		assert.Equal(t, want, est.Model, "prefix %q", prefix)
	}
}

func TestDecode_LenientWithMalformedInput(t *testing.T) {
	// Decode stays usable on junk; the strict check lives in Validate.
	est := Decode("")
	assert.Equal(t, "dolphin-phi:latest", est.Model)
	assert.Equal(t, 0.1, est.Temperature)
	assert.Equal(t, 0.1, est.TopP)
}
