package store

import (
	"context"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/common"
)

// GetProgress returns the user's progress, or the defaults when none is
// stored. It never creates a record.
func (s *Store) GetProgress(id string) models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[id]
	if !ok {
		return models.DefaultProgress()
	}
	return p.Clone()
}

// UpdateProgress merges patch into the user's progress and returns the
// result.
func (s *Store) UpdateProgress(ctx context.Context, id string, patch models.ProgressPatch) (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return models.Progress{}, common.ErrUserNotFound
	}

	prev, had := s.progress[id]
	base := prev
	if !had {
		base = models.DefaultProgress()
	}
	next := base.Apply(patch)
	s.progress[id] = next

	err := s.save(ctx, progressCollection, func() {
		if had {
			s.progress[id] = prev
		} else {
			delete(s.progress, id)
		}
	})
	if err != nil {
		return models.Progress{}, err
	}
	return next.Clone(), nil
}
