package models

import "slices"

const (
	xpPerLevel       = 100
	xpCorrectAnswer  = 10
	xpStreakBonus    = 20
	streakBonusAfter = 5
)

// LevelForXP maps experience points to a level; 0–99 XP is level 1.
func LevelForXP(xp int) int {
	return xp/xpPerLevel + 1
}

// IsCompleted reports whether the card was already answered this round.
func (f FlashcardProgress) IsCompleted(cardID int) bool {
	return slices.Contains(f.CompletedCards, cardID)
}

// AnswerPatch scores an answer to cardID. It returns false when the card
// was already answered, in which case nothing should change.
//
// A correct answer extends the streak and earns 10 XP, or 20 XP once the
// streak is longer than five. A wrong answer resets the streak.
func (f FlashcardProgress) AnswerPatch(cardID int, correct bool) (FlashcardPatch, bool) {
	if f.IsCompleted(cardID) {
		return FlashcardPatch{}, false
	}

	completed := append(slices.Clone(f.CompletedCards), cardID)

	if !correct {
		score := Score{Correct: f.Score.Correct, Total: f.Score.Total + 1}
		streak := 0
		return FlashcardPatch{CompletedCards: completed, Score: &score, Streak: &streak}, true
	}

	streak := f.Streak + 1
	gain := xpCorrectAnswer
	if streak > streakBonusAfter {
		gain = xpStreakBonus
	}
	xp := f.XP + gain
	level := LevelForXP(xp)
	best := max(f.BestStreak, streak)
	score := Score{Correct: f.Score.Correct + 1, Total: f.Score.Total + 1}

	return FlashcardPatch{
		CompletedCards: completed,
		Score:          &score,
		Streak:         &streak,
		BestStreak:     &best,
		Level:          &level,
		XP:             &xp,
	}, true
}

// RewardPatch adds battle XP; a finished battle also counts towards the
// streak.
func (f FlashcardProgress) RewardPatch(amount int) FlashcardPatch {
	xp := f.XP + amount
	level := LevelForXP(xp)
	streak := f.Streak + 1
	return FlashcardPatch{XP: &xp, Level: &level, Streak: &streak}
}

// ResetPatch starts a new round: score, streak and completed cards are
// cleared while XP, level and best streak are kept.
func ResetPatch() FlashcardPatch {
	score := Score{}
	streak := 0
	return FlashcardPatch{CompletedCards: []int{}, Score: &score, Streak: &streak}
}
