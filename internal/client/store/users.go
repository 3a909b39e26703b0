package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/common"
	"github.com/google/uuid"
)

// RegisterUser creates an account for a verified email. Conflicts are
// checked in order: email, username, verification.
//
// The new user gets default progress; both are written in one batch.
func (s *Store) RegisterUser(ctx context.Context, in models.RegisterInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[in.Email]; ok {
		return models.User{}, common.ErrDuplicateEmail
	}
	if _, ok := s.byUsername[in.Username]; ok {
		return models.User{}, common.ErrDuplicateUsername
	}
	if rec, ok := s.codes[in.Email]; !ok || !rec.Verified {
		return models.User{}, common.ErrEmailNotVerified
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		JoinedAt:     s.now(),
		IsActive:     true,
	}
	s.insertUser(u)
	s.progress[u.ID] = models.DefaultProgress()

	err = s.save(ctx, usersCollection|progressCollection, func() {
		s.removeLastUser(u.ID)
		delete(s.progress, u.ID)
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID, "username", u.Username)
	return u.Clone(), nil
}

// lookup resolves a username or email to a user id. When the identifier
// matches two different accounts the earlier registration wins.
func (s *Store) lookup(identifier string) (string, bool) {
	byName, okName := s.byUsername[identifier]
	byMail, okMail := s.byEmail[identifier]
	switch {
	case okName && okMail:
		if s.position[byMail] < s.position[byName] {
			return byMail, true
		}
		return byName, true
	case okName:
		return byName, true
	case okMail:
		return byMail, true
	}
	return "", false
}

// LoginUser checks credentials and stamps the login time.
func (s *Store) LoginUser(ctx context.Context, identifier, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.lookup(identifier)
	if !ok {
		return models.User{}, common.ErrUserNotFound
	}
	u := s.users[id]

	if !s.hasher.Verify(u.PasswordHash, password) {
		return models.User{}, common.ErrInvalidPassword
	}
	if !u.IsActive {
		return models.User{}, common.ErrAccountDeactivated
	}

	prev := u
	now := s.now()
	u.LastLoginAt = &now
	s.users[id] = u
	if err := s.save(ctx, usersCollection, func() { s.users[id] = prev }); err != nil {
		return models.User{}, err
	}

	s.log.Info(ctx, "user logged in", "user_id", id)
	return u.Clone(), nil
}

func (s *Store) GetUser(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return u.Clone(), true
}

// UpdateUserProfile applies patch to the user. A new password is hashed and
// a changed email or username must stay unique.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrUserNotFound
	}
	u := prev.Clone()

	if patch.Email != nil && *patch.Email != u.Email {
		if err := models.ValidateEmail(*patch.Email); err != nil {
			return models.User{}, err
		}
		if _, taken := s.byEmail[*patch.Email]; taken {
			return models.User{}, common.ErrDuplicateEmail
		}
		u.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != u.Username {
		if err := models.ValidateUsername(*patch.Username); err != nil {
			return models.User{}, err
		}
		if _, taken := s.byUsername[*patch.Username]; taken {
			return models.User{}, common.ErrDuplicateUsername
		}
		u.Username = *patch.Username
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	switch {
	case patch.ClearProfilePicture:
		u.ProfilePicture = nil
	case patch.ProfilePicture != nil:
		pic := *patch.ProfilePicture
		u.ProfilePicture = &pic
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		if err := models.ValidatePassword(*patch.Password); err != nil {
			return models.User{}, err
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	s.users[id] = u
	s.reindex(prev, u)
	err := s.save(ctx, usersCollection, func() {
		s.users[id] = prev
		s.reindex(u, prev)
	})
	if err != nil {
		return models.User{}, err
	}
	return u.Clone(), nil
}

// Logout stamps the last activity time of a known user. Unknown ids are
// ignored.
func (s *Store) Logout(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[id]
	if !ok {
		return nil
	}
	u := prev
	now := s.now()
	u.LastLoginAt = &now
	s.users[id] = u
	return s.save(ctx, usersCollection, func() { s.users[id] = prev })
}
