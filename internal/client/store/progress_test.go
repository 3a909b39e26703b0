package store

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mindcandy/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProgress_DefaultsWithoutCreating(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	s := newTestStore(t, repo, newFakeClock(), false)

	assert.Equal(t, models.DefaultProgress(), s.GetProgress("nobody"))

	v, err := repo.Get(ctx, common.UserProgressKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUpdateProgress_XPOnlyKeepsSiblings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemoryRepository(), newFakeClock(), false)
	u := registerVerified(t, s, "a@x.com", "alice", "secret1")

	_, err := s.UpdateProgress(ctx, u.ID, models.ProgressPatch{FlashcardProgress: &models.FlashcardPatch{
		CompletedCards: []int{1, 2},
		XP:             ptr(50),
	}})
	require.NoError(t, err)

	p, err := s.UpdateProgress(ctx, u.ID, models.ProgressPatch{FlashcardProgress: &models.FlashcardPatch{XP: ptr(60)}})
	require.NoError(t, err)
	assert.Equal(t, 60, p.FlashcardProgress.XP)
	assert.Equal(t, []int{1, 2}, p.FlashcardProgress.CompletedCards)
	assert.Equal(t, p, s.GetProgress(u.ID))
}

func TestUpdateProgress_TopLevelReplaceKeepsOthers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemoryRepository(), newFakeClock(), false)
	u := registerVerified(t, s, "a@x.com", "alice", "secret1")

	moods := []models.MoodEntry{{Mood: models.MoodHappy, Note: "great day"}}
	_, err := s.UpdateProgress(ctx, u.ID, models.ProgressPatch{MoodEntries: moods})
	require.NoError(t, err)

	p, err := s.UpdateProgress(ctx, u.ID, models.ProgressPatch{Settings: &models.Settings{Theme: models.ThemeDark}})
	require.NoError(t, err)
	assert.Equal(t, moods, p.MoodEntries)
	assert.Equal(t, models.ThemeDark, p.Settings.Theme)
}

func TestUpdateProgress_UnknownUser(t *testing.T) {
	s := newTestStore(t, kv.NewMemoryRepository(), newFakeClock(), false)

	_, err := s.UpdateProgress(context.Background(), "ghost", models.ProgressPatch{})
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestUpdateProgress_ResultDoesNotAliasStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemoryRepository(), newFakeClock(), false)
	u := registerVerified(t, s, "a@x.com", "alice", "secret1")

	p, err := s.UpdateProgress(ctx, u.ID, models.ProgressPatch{FlashcardProgress: &models.FlashcardPatch{CompletedCards: []int{3}}})
	require.NoError(t, err)
	p.FlashcardProgress.CompletedCards[0] = 99

	assert.Equal(t, []int{3}, s.GetProgress(u.ID).FlashcardProgress.CompletedCards)
}
