package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/common"
)

// User is an account record. PasswordHash holds an argon2id hash, never
// the password itself.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	PasswordHash   string     `json:"passwordHash"`
	Name           string     `json:"name"`
	ProfilePicture *string    `json:"profilePicture"`
	JoinedAt       time.Time  `json:"joinedAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
	IsActive       bool       `json:"isActive"`
}

// RegisterInput is what a sign-up form submits.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// Credentials identify an account by username or email.
type Credentials struct {
	Identifier string
	Password   string
}

// ProfilePatch is a partial profile update; nil fields are left alone.
// The id is not patchable. ClearProfilePicture resets the picture to null
// and wins over ProfilePicture.
type ProfilePatch struct {
	Email               *string
	Username            *string
	Name                *string
	ProfilePicture      *string
	ClearProfilePicture bool
	Password            *string
	IsActive            *bool
}

const (
	MinPasswordLength = 6
	MinUsernameLength = 3
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// ValidateEmail checks the address shape accepted by the sign-up form.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: please enter a valid email address", common.ErrInvalidInput)
	}
	return nil
}

func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be at least %d characters and contain only letters, numbers, and underscores",
			common.ErrInvalidInput, MinUsernameLength)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

// Validate applies the sign-up form rules.
func (in RegisterInput) Validate() error {
	if in.Email == "" || in.Username == "" || in.Password == "" || in.Name == "" {
		return fmt.Errorf("%w: please fill in all fields", common.ErrInvalidInput)
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	return ValidatePassword(in.Password)
}

// Clone copies u including the values behind its pointer fields.
func (u User) Clone() User {
	out := u
	if u.ProfilePicture != nil {
		pic := *u.ProfilePicture
		out.ProfilePicture = &pic
	}
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		out.LastLoginAt = &at
	}
	return out
}
