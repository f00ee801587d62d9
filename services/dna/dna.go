// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dna implements the generation fingerprint engine.
//
// Every generation is tagged with a "DNA" string: a 64-character lowercase
// hex identifier derived deterministically from the generation parameters.
// Two parties holding the same parameters always compute the same DNA, so
// fingerprints can be stored, shared, and compared without coordination.
//
// The engine also provides genetic-algorithm style operations over
// fingerprints: single-point crossover (Remix), per-character random
// mutation (Mutate), and a Hamming-distance compatibility report.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Mutate draws from
// math/rand/v2's top-level source, which is safe for concurrent callers.
package dna

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Length is the exact character length of a valid DNA string.
// A SHA-256 digest rendered as hex is exactly 64 characters, so no
// truncation is applied.
const Length = 64

// Version tags the canonical record so future schema changes produce
// distinct fingerprints for otherwise identical parameters.
const Version = "1.0"

// DefaultCrossoverPoint is used by Remix when the requested crossover
// point falls outside [1, 63].
const DefaultCrossoverPoint = 32

// DefaultMutationRate is the conventional per-character mutation
// probability used by callers that do not pick their own.
const DefaultMutationRate = 0.1

// ErrInvalidDNA is returned by Remix and Mutate when an input fails
// Validate. Compatibility reports the same condition as a soft error
// field instead, so bulk callers can skip exception handling.
var ErrInvalidDNA = errors.New("invalid DNA format")

const hexDigits = "0123456789abcdef"

// estimateNote marks decoded parameters as heuristic, not recovered.
const estimateNote = "Parameters estimated from DNA pattern"

// decodeModelTable maps a DNA's first character to an estimated model.
// Unmapped characters fall back to dolphin-phi.
var decodeModelTable = map[byte]string{
	'0': "dolphin-phi:latest",
	'1': "llama2:latest",
	'2': "mistral:latest",
	'3': "gpt-4",
}

const decodeModelDefault = "dolphin-phi:latest"

// Generate computes the DNA for a set of generation parameters.
//
// The parameters are assembled into a canonical record (fields sorted
// lexicographically, fixed schema version) and hashed with SHA-256; the
// lowercase hex digest is the DNA. Identical inputs always yield the
// identical DNA. Callers must pass finite floats; non-finite values are
// outside the input domain.
func Generate(prompt string, temperature, topP float64, model string) string {
	// encoding/json sorts map keys, which gives us the canonical form.
	record := map[string]any{
		"prompt":      prompt,
		"temperature": temperature,
		"top_p":       topP,
		"model":       model,
		"version":     Version,
	}
	return hashRecord(record)
}

// GeneratePersona computes a DNA for a named persona and its trait map.
//
// Persona fingerprints carry a literal type tag so they can never collide
// with generation fingerprints for coincidentally equal content. Nested
// trait maps are canonicalized recursively by the JSON encoder.
func GeneratePersona(personaName string, traits map[string]any) string {
	record := map[string]any{
		"persona": personaName,
		"traits":  traits,
		"type":    "persona_dna",
		"version": Version,
	}
	return hashRecord(record)
}

func hashRecord(record map[string]any) string {
	canonical, err := json.Marshal(record)
	if err != nil {
		// Only non-finite floats or unserializable trait values can get
		// here, both outside the documented input domain.
		panic(fmt.Sprintf("dna: canonicalize record: %v", err))
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// Validate reports whether s is a well-formed DNA: exactly 64 characters,
// all lowercase hex digits. It never panics and accepts any input.
func Validate(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Estimate holds parameters heuristically reconstructed from a DNA.
//
// Decode is not an inverse of Generate; the Note field flags the values
// as pattern-based estimates.
type Estimate struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Model       string  `json:"model"`
	DNA         string  `json:"dna"`
	Note        string  `json:"note"`
}

// Decode derives estimated generation parameters from a DNA string.
//
// The character-code checksum of the string selects one of 20 discrete
// temperatures (0.1-2.0) and one of 9 top_p values (0.1-0.9); the first
// character selects a model from a fixed table. Deterministic for a
// given input. Decode is deliberately lenient about format - it produces
// an estimate even for malformed strings - because the strict boundary
// check belongs to the consuming layer (see Validate).
func Decode(s string) Estimate {
	var checksum int
	for i := 0; i < len(s); i++ {
		checksum += int(s[i])
	}

	temp := 0.1 + float64(checksum%20)*0.1
	topP := 0.1 + float64(checksum%9)*0.1

	model := decodeModelDefault
	if len(s) > 0 {
		if m, ok := decodeModelTable[s[0]]; ok {
			model = m
		}
	}

	return Estimate{
		Temperature: round1(temp),
		TopP:        round1(topP),
		Model:       model,
		DNA:         s,
		Note:        estimateNote,
	}
}

// Remix splices two DNAs at crossoverPoint: the first crossoverPoint
// characters of a followed by the remainder of b. A crossover point
// outside [1, 63] is coerced to DefaultCrossoverPoint rather than
// rejected. Both inputs must pass Validate or ErrInvalidDNA is returned.
func Remix(a, b string, crossoverPoint int) (string, error) {
	if !Validate(a) || !Validate(b) {
		return "", ErrInvalidDNA
	}
	if crossoverPoint < 1 || crossoverPoint >= Length {
		crossoverPoint = DefaultCrossoverPoint
	}
	return a[:crossoverPoint] + b[crossoverPoint:], nil
}

// Mutate replaces each character independently with probability
// mutationRate by a uniformly random hex digit. The input must pass
// Validate or ErrInvalidDNA is returned. The result of two calls with
// the same input will differ between calls whenever 0 < rate; that
// non-reproducibility is the intended mutation semantic. The rate is
// not range-checked; values outside [0, 1] clamp naturally.
func Mutate(s string, mutationRate float64) (string, error) {
	if !Validate(s) {
		return "", ErrInvalidDNA
	}
	var out strings.Builder
	out.Grow(Length)
	for i := 0; i < len(s); i++ {
		if rand.Float64() < mutationRate {
			out.WriteByte(hexDigits[rand.IntN(len(hexDigits))])
		} else {
			out.WriteByte(s[i])
		}
	}
	return out.String(), nil
}

// CharacterClasses is a per-DNA histogram of character categories.
//
// Valid DNAs only contain 0-9 and a-f, so Vowels can only count a/e and
// Consonants only b/c/d/f; the wider letter sets are kept for parity
// with the report shape consumers already store.
type CharacterClasses struct {
	Vowels     int `json:"vowels"`
	Consonants int `json:"consonants"`
	Numbers    int `json:"numbers"`
}

// Report describes how compatible two DNAs are for remixing.
//
// When either input is malformed, Error is set and every other field is
// zero; Compatibility never fails hard so it is safe to call with
// unsanitized pairs.
type Report struct {
	SimilarityPercentage float64          `json:"similarity_percentage"`
	Differences          int              `json:"differences"`
	RecommendedCrossover int              `json:"recommended_crossover"`
	PatternsA            CharacterClasses `json:"patterns_a"`
	PatternsB            CharacterClasses `json:"patterns_b"`
	Compatibility        string           `json:"compatibility"`
	Error                string           `json:"error,omitempty"`
}

// Compatibility scores two DNAs for remixing.
//
// Similarity is (64 - Hamming distance) / 64 as a percentage rounded to
// two decimals. Similarity above 50% recommends the default crossover
// point of 32, otherwise 16. Labels: High (>70), Medium (>40), Low.
func Compatibility(a, b string) Report {
	if !Validate(a) || !Validate(b) {
		return Report{Error: "Invalid DNA format"}
	}

	differences := 0
	for i := 0; i < Length; i++ {
		if a[i] != b[i] {
			differences++
		}
	}
	similarity := round2(float64(Length-differences) / Length * 100)

	recommended := 16
	if similarity > 50 {
		recommended = DefaultCrossoverPoint
	}

	label := "Low"
	switch {
	case similarity > 70:
		label = "High"
	case similarity > 40:
		label = "Medium"
	}

	return Report{
		SimilarityPercentage: similarity,
		Differences:          differences,
		RecommendedCrossover: recommended,
		PatternsA:            classify(a),
		PatternsB:            classify(b),
		Compatibility:        label,
	}
}

func classify(s string) CharacterClasses {
	var c CharacterClasses
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			c.Numbers++
		case strings.IndexByte("aeiou", ch) >= 0:
			c.Vowels++
		case ch >= 'b' && ch <= 'z':
			c.Consonants++
		}
	}
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
