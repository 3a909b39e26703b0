package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/common"
)

// LogMood records how the user feels. The note is trimmed, must not be
// empty, and also goes to the journal tagged with the same mood.
func (m *Manager) LogMood(ctx context.Context, mood models.Mood, note string) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress == nil {
		return models.Progress{}, common.ErrNoActiveSession
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return models.Progress{}, fmt.Errorf("%w: mood note is empty", common.ErrInvalidInput)
	}
	now := m.now()
	cur := m.progress

	return m.updateProgress(ctx, models.ProgressPatch{
		MoodEntries:    append(slices.Clone(cur.MoodEntries), models.MoodEntry{Mood: mood, Note: note, Date: now}),
		JournalEntries: append(slices.Clone(cur.JournalEntries), models.JournalEntry{Content: note, Mood: mood, Date: now}),
	})
}

func (m *Manager) AddJournalEntry(ctx context.Context, content string, mood models.Mood) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress == nil {
		return models.Progress{}, common.ErrNoActiveSession
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Progress{}, fmt.Errorf("%w: journal entry is empty", common.ErrInvalidInput)
	}
	entry := models.JournalEntry{Content: content, Mood: mood, Date: m.now()}

	return m.updateProgress(ctx, models.ProgressPatch{
		JournalEntries: append(slices.Clone(m.progress.JournalEntries), entry),
	})
}

// RecordFlashcardAnswer scores one flashcard. It reports false, and changes
// nothing, when the card was already answered in this round.
func (m *Manager) RecordFlashcardAnswer(ctx context.Context, cardID int, correct bool) (models.Progress, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress == nil {
		return models.Progress{}, false, common.ErrNoActiveSession
	}
	patch, ok := m.progress.FlashcardProgress.AnswerPatch(cardID, correct)
	if !ok {
		return m.progress.Clone(), false, nil
	}

	p, err := m.updateProgress(ctx, models.ProgressPatch{FlashcardProgress: &patch})
	if err != nil {
		return models.Progress{}, false, err
	}
	return p, true, nil
}

// AwardXP credits a battle reward.
func (m *Manager) AwardXP(ctx context.Context, amount int) (models.Progress, error) {
	if amount <= 0 {
		return models.Progress{}, fmt.Errorf("%w: xp reward must be positive, got %d", common.ErrInvalidInput, amount)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress == nil {
		return models.Progress{}, common.ErrNoActiveSession
	}
	patch := m.progress.FlashcardProgress.RewardPatch(amount)
	return m.updateProgress(ctx, models.ProgressPatch{FlashcardProgress: &patch})
}

func (m *Manager) ResetFlashcards(ctx context.Context) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	patch := models.ResetPatch()
	return m.updateProgress(ctx, models.ProgressPatch{FlashcardProgress: &patch})
}

func (m *Manager) UpdateSettings(ctx context.Context, s models.Settings) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updateProgress(ctx, models.ProgressPatch{Settings: &s})
}
