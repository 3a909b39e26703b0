package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
)

func (a *App) Progress(_ context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	p, _ := a.accounts.CurrentProgress()
	f := p.FlashcardProgress

	a.printf("Level %d, %d XP\n", f.Level, f.XP)
	a.printf("Flashcards: %d/%d correct, streak %d (best %d), %d cards done\n",
		f.Score.Correct, f.Score.Total, f.Streak, f.BestStreak, len(f.CompletedCards))
	a.printf("Moods logged: %d, journal entries: %d\n", len(p.MoodEntries), len(p.JournalEntries))
	if n := len(p.MoodEntries); n > 0 {
		last := p.MoodEntries[n-1]
		a.printf("Last mood: %s (%s)\n", last.Mood, last.Date.Format("2006-01-02 15:04"))
	}
	a.printf("Theme: %s, notifications: %t, haptics: %t\n",
		p.Settings.Theme, p.Settings.Notifications, p.Settings.HapticFeedback)
	return nil
}

// Mood logs how the user feels; the note also lands in the journal.
//
//	mood happy|sad|angry [note...]
func (a *App) Mood(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: mood happy|sad|angry [note]")
	}
	mood, err := models.ParseMood(args[0])
	if err != nil {
		return err
	}

	note := strings.Join(args[1:], " ")
	if note == "" {
		if note, err = getSimpleText(a.reader, "Want to share more?", a.out); err != nil {
			return err
		}
	}

	if _, err := a.accounts.LogMood(ctx, mood, note); err != nil {
		return err
	}
	a.println("Mood saved.")
	return nil
}

//	journal [happy|sad|angry]
func (a *App) Journal(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	mood := models.MoodHappy
	if len(args) > 0 {
		m, err := models.ParseMood(args[0])
		if err != nil {
			return err
		}
		mood = m
	}

	content, err := GetMultiline(a.reader, "Write your entry", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		return errors.New("journal entry is empty")
	}

	if _, err := a.accounts.AddJournalEntry(ctx, content, mood); err != nil {
		return err
	}
	a.println("Journal entry saved.")
	return nil
}

// Answer records a flashcard answer.
//
//	answer <card id> y|n
func (a *App) Answer(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 2 {
		return errors.New("usage: answer <card id> y|n")
	}
	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad card id %q", args[0])
	}
	var correct bool
	switch strings.ToLower(args[1]) {
	case "y", "yes":
		correct = true
	case "n", "no":
	default:
		return errors.New("usage: answer <card id> y|n")
	}

	p, applied, err := a.accounts.RecordFlashcardAnswer(ctx, cardID, correct)
	if err != nil {
		return err
	}
	if !applied {
		a.printf("Card %d was already answered this round.\n", cardID)
		return nil
	}

	f := p.FlashcardProgress
	if correct {
		a.printf("Correct! Streak %d, %d XP, level %d\n", f.Streak, f.XP, f.Level)
	} else {
		a.printf("Not quite. Score %d/%d\n", f.Score.Correct, f.Score.Total)
	}
	return nil
}

//	xp <amount>
func (a *App) XP(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: xp <amount>")
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad amount %q", args[0])
	}

	p, err := a.accounts.AwardXP(ctx, amount)
	if err != nil {
		return err
	}
	a.printf("You earned %d XP! Total %d, level %d\n", amount, p.FlashcardProgress.XP, p.FlashcardProgress.Level)
	return nil
}

func (a *App) ResetCards(ctx context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if _, err := a.accounts.ResetFlashcards(ctx); err != nil {
		return err
	}
	a.println("Flashcards reset. XP and level are kept.")
	return nil
}

//	theme candy|light|dark
func (a *App) Theme(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: theme candy|light|dark")
	}
	theme, err := models.ParseTheme(args[0])
	if err != nil {
		return err
	}

	p, _ := a.accounts.CurrentProgress()
	s := p.Settings
	s.Theme = theme
	if _, err := a.accounts.UpdateSettings(ctx, s); err != nil {
		return err
	}
	a.printf("Theme set to %s.\n", theme)
	return nil
}
