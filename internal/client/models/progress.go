package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/common"
)

type Mood string

const (
	MoodHappy Mood = "happy"
	MoodSad   Mood = "sad"
	MoodAngry Mood = "angry"
)

func ParseMood(s string) (Mood, error) {
	switch m := Mood(s); m {
	case MoodHappy, MoodSad, MoodAngry:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mood %q", common.ErrInvalidInput, s)
	}
}

type Theme string

const (
	ThemeCandy Theme = "candy"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeCandy, ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown theme %q", common.ErrInvalidInput, s)
	}
}

type MoodEntry struct {
	Mood Mood      `json:"mood"`
	Note string    `json:"note"`
	Date time.Time `json:"date"`
}

type JournalEntry struct {
	Content string    `json:"content"`
	Mood    Mood      `json:"mood"`
	Date    time.Time `json:"date"`
}

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type FlashcardProgress struct {
	CompletedCards []int `json:"completedCards"`
	Score          Score `json:"score"`
	Streak         int   `json:"streak"`
	BestStreak     int   `json:"bestStreak"`
	Level          int   `json:"level"`
	XP             int   `json:"xp"`
}

type Settings struct {
	Notifications  bool  `json:"notifications"`
	Theme          Theme `json:"theme"`
	HapticFeedback bool  `json:"hapticFeedback"`
}

// Progress is the per-user activity record. StudySessions and Achievements
// are opaque to the core.
type Progress struct {
	MoodEntries       []MoodEntry       `json:"moodEntries"`
	JournalEntries    []JournalEntry    `json:"journalEntries"`
	FlashcardProgress FlashcardProgress `json:"flashcardProgress"`
	StudySessions     []json.RawMessage `json:"studySessions"`
	Achievements      []json.RawMessage `json:"achievements"`
	Settings          Settings          `json:"settings"`
}

// DefaultProgress is the record every new account starts with.
func DefaultProgress() Progress {
	return Progress{
		MoodEntries:    []MoodEntry{},
		JournalEntries: []JournalEntry{},
		FlashcardProgress: FlashcardProgress{
			CompletedCards: []int{},
			Level:          1,
		},
		StudySessions: []json.RawMessage{},
		Achievements:  []json.RawMessage{},
		Settings: Settings{
			Notifications:  true,
			Theme:          ThemeCandy,
			HapticFeedback: true,
		},
	}
}

// ProgressPatch is a partial progress update. A nil slice or pointer means
// the field is absent; an empty non-nil slice replaces the field with an
// empty sequence.
type ProgressPatch struct {
	MoodEntries       []MoodEntry
	JournalEntries    []JournalEntry
	FlashcardProgress *FlashcardPatch
	StudySessions     []json.RawMessage
	Achievements      []json.RawMessage
	Settings          *Settings
}

// FlashcardPatch updates flashcard progress field by field.
type FlashcardPatch struct {
	CompletedCards []int
	Score          *Score
	Streak         *int
	BestStreak     *int
	Level          *int
	XP             *int
}

// Apply merges patch into p and returns the result; p is not modified.
//
// Top-level fields present in the patch replace the stored ones. Flashcard
// progress is merged one level deeper, so a patch carrying only XP keeps
// completed cards, score and streaks.
func (p Progress) Apply(patch ProgressPatch) Progress {
	out := p.Clone()

	if patch.MoodEntries != nil {
		out.MoodEntries = slices.Clone(patch.MoodEntries)
	}
	if patch.JournalEntries != nil {
		out.JournalEntries = slices.Clone(patch.JournalEntries)
	}
	if patch.StudySessions != nil {
		out.StudySessions = cloneRaw(patch.StudySessions)
	}
	if patch.Achievements != nil {
		out.Achievements = cloneRaw(patch.Achievements)
	}
	if patch.Settings != nil {
		out.Settings = *patch.Settings
	}
	if fp := patch.FlashcardProgress; fp != nil {
		f := &out.FlashcardProgress
		if fp.CompletedCards != nil {
			f.CompletedCards = slices.Clone(fp.CompletedCards)
		}
		if fp.Score != nil {
			f.Score = *fp.Score
		}
		if fp.Streak != nil {
			f.Streak = *fp.Streak
		}
		if fp.BestStreak != nil {
			f.BestStreak = *fp.BestStreak
		}
		if fp.Level != nil {
			f.Level = *fp.Level
		}
		if fp.XP != nil {
			f.XP = *fp.XP
		}
	}

	return out
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := p
	out.MoodEntries = slices.Clone(p.MoodEntries)
	out.JournalEntries = slices.Clone(p.JournalEntries)
	out.FlashcardProgress.CompletedCards = slices.Clone(p.FlashcardProgress.CompletedCards)
	out.StudySessions = cloneRaw(p.StudySessions)
	out.Achievements = cloneRaw(p.Achievements)
	return out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, m := range in {
		out[i] = slices.Clone(m)
	}
	return out
}
