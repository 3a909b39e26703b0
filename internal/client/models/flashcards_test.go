package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct{ xp, level int }{
		{0, 1}, {99, 1}, {100, 2}, {250, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestAnswerPatch_Correct(t *testing.T) {
	f := FlashcardProgress{CompletedCards: []int{}, Level: 1, XP: 95, BestStreak: 3}

	patch, ok := f.AnswerPatch(4, true)
	require.True(t, ok)

	got := Progress{FlashcardProgress: f}.Apply(ProgressPatch{FlashcardProgress: &patch}).FlashcardProgress
	assert.Equal(t, []int{4}, got.CompletedCards)
	assert.Equal(t, Score{Correct: 1, Total: 1}, got.Score)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 3, got.BestStreak)
	assert.Equal(t, 105, got.XP)
	assert.Equal(t, 2, got.Level)
}

func TestAnswerPatch_StreakBonusAfterFive(t *testing.T) {
	f := FlashcardProgress{Streak: 5, BestStreak: 5, Level: 1}

	patch, ok := f.AnswerPatch(1, true)
	require.True(t, ok)
	assert.Equal(t, 20, *patch.XP)
	assert.Equal(t, 6, *patch.Streak)
	assert.Equal(t, 6, *patch.BestStreak)

	f = FlashcardProgress{Streak: 4, Level: 1}
	patch, _ = f.AnswerPatch(1, true)
	assert.Equal(t, 10, *patch.XP)
}

func TestAnswerPatch_IncorrectResetsStreakOnly(t *testing.T) {
	f := FlashcardProgress{Streak: 3, BestStreak: 3, XP: 30, Level: 1, Score: Score{Correct: 3, Total: 3}}

	patch, ok := f.AnswerPatch(9, false)
	require.True(t, ok)

	assert.Equal(t, 0, *patch.Streak)
	assert.Equal(t, Score{Correct: 3, Total: 4}, *patch.Score)
	assert.Nil(t, patch.XP)
	assert.Nil(t, patch.BestStreak)
	assert.Equal(t, []int{9}, patch.CompletedCards)
}

func TestAnswerPatch_CompletedCardIgnored(t *testing.T) {
	f := FlashcardProgress{CompletedCards: []int{2}}
	_, ok := f.AnswerPatch(2, true)
	assert.False(t, ok)
}

func TestRewardPatch(t *testing.T) {
	f := FlashcardProgress{XP: 80, Level: 1, Streak: 2}
	patch := f.RewardPatch(50)

	assert.Equal(t, 130, *patch.XP)
	assert.Equal(t, 2, *patch.Level)
	assert.Equal(t, 3, *patch.Streak)
	assert.Nil(t, patch.CompletedCards)
}

func TestResetPatch_KeepsXPAndBest(t *testing.T) {
	f := FlashcardProgress{CompletedCards: []int{1, 2}, Score: Score{1, 2}, Streak: 1, BestStreak: 4, XP: 120, Level: 2}
	reset := ResetPatch()

	got := Progress{FlashcardProgress: f}.Apply(ProgressPatch{FlashcardProgress: &reset}).FlashcardProgress
	assert.Empty(t, got.CompletedCards)
	assert.Equal(t, Score{}, got.Score)
	assert.Zero(t, got.Streak)
	assert.Equal(t, 4, got.BestStreak)
	assert.Equal(t, 120, got.XP)
	assert.Equal(t, 2, got.Level)
}
