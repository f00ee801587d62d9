// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "playground.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpen_SeedsGalleryOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.db")

	store, err := Open(path)
	require.NoError(t, err)
	prompts, err := store.ListCommunityPrompts(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, prompts, 5)
	require.NoError(t, store.Close())

	// Re-opening must not duplicate the seed rows.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	prompts, err = store.ListCommunityPrompts(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, prompts, 5)
}

func TestGetOrCreateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.GetOrCreateUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Zero(t, created.TotalUsage)
	assert.Equal(t, "dolphin-phi:latest", created.FavoriteModel)

	again, err := store.GetOrCreateUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestIncrementUsage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.IncrementUsage(ctx, "user-1"))
	require.NoError(t, store.IncrementUsage(ctx, "user-1"))

	user, err := store.GetOrCreateUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, user.DailyUsage)
	assert.Equal(t, 2, user.MonthlyUsage)
	assert.Equal(t, 2, user.TotalUsage)

	err = store.IncrementUsage(ctx, "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveGenerationAndHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	longPrompt := ""
	for i := 0; i < 30; i++ {
		longPrompt += "dragons "
	}

	g := Generation{
		UserID: "user-1",
		Prompt: longPrompt,
		Output: "a skyline of data",
		DNA:    "4fc9e2a1b7d8036c5e9f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d",
		Parameters: Parameters{
			Temperature: 1.3,
			TopP:        0.95,
			Model:       "dolphin-phi:latest",
			Persona:     "dream narrator",
		},
		ModelUsed:      "dolphin-phi:latest",
		GenerationTime: 2.5,
	}
	require.NoError(t, store.SaveGeneration(ctx, g))

	history, err := store.History(ctx, "user-1", 50)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Len(t, got.Prompt, 100, "prompt is truncated for listing")
	assert.Equal(t, g.Output, got.Output)
	assert.Equal(t, g.DNA, got.DNA)
	assert.Equal(t, g.Parameters, got.Parameters)
	assert.Equal(t, 2.5, got.GenerationTime)
	assert.NotEmpty(t, got.CreatedAt)

	other, err := store.History(ctx, "someone-else", 50)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCommunityPromptLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.ShareCommunityPrompt(ctx, CommunityPrompt{
		UserID:      "user-1",
		Title:       "Glass Rivers",
		Prompt:      "Rivers of molten glass flowing uphill through inverted cities",
		Description: "gravity-defying landscapes",
		Tags:        []string{"glass", "rivers"},
	})
	require.NoError(t, err)
	require.NoError(t, store.LikeCommunityPrompt(ctx, id))
	require.NoError(t, store.DownloadCommunityPrompt(ctx, id))

	prompts, err := store.ListCommunityPrompts(ctx, 50)
	require.NoError(t, err)

	var shared *CommunityPrompt
	for i := range prompts {
		if prompts[i].ID == id {
			shared = &prompts[i]
		}
	}
	require.NotNil(t, shared)
	assert.Equal(t, 1, shared.Likes)
	assert.Equal(t, 1, shared.Downloads)
	assert.Equal(t, []string{"glass", "rivers"}, shared.Tags)

	assert.ErrorIs(t, store.LikeCommunityPrompt(ctx, 99999), sql.ErrNoRows)
}

func TestActiveSponsors_TierOrdering(t *testing.T) {
	store := newTestStore(t)

	sponsors, err := store.ActiveSponsors(context.Background())
	require.NoError(t, err)
	require.Len(t, sponsors, 3)
	assert.Equal(t, "platinum", sponsors[0].Tier)
	assert.Equal(t, "gold", sponsors[1].Tier)
	assert.Equal(t, "silver", sponsors[2].Tier)
}

func TestAnalytics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, "user-1")
	require.NoError(t, err)

	for _, model := range []string{"mistral:latest", "mistral:latest", "gpt-4"} {
		require.NoError(t, store.SaveGeneration(ctx, Generation{
			UserID:    "user-1",
			Prompt:    "p",
			Output:    "o",
			ModelUsed: model,
		}))
	}

	a, err := store.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalUsers)
	assert.Equal(t, 3, a.TotalGenerations)
	require.NotEmpty(t, a.PopularModels)
	assert.Equal(t, ModelCount{Model: "mistral:latest", Count: 2}, a.PopularModels[0])
	require.NotEmpty(t, a.RecentActivity)
	assert.Equal(t, 3, a.RecentActivity[0].Count)
}
