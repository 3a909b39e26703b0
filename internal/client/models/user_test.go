package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterInput_Validate(t *testing.T) {
	valid := RegisterInput{Email: "a@x.com", Username: "candy_fan", Password: "secret1", Name: "A"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "a@x" }},
		{"email with space", func(in *RegisterInput) { in.Email = "a b@x.com" }},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"username with dash", func(in *RegisterInput) { in.Username = "candy-fan" }},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			require.ErrorIs(t, in.Validate(), common.ErrInvalidInput)
		})
	}
}

func TestVerificationCode_Expired(t *testing.T) {
	issued := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	c := VerificationCode{Code: "123456", IssuedAt: issued}

	assert.False(t, c.Expired(issued.Add(5*time.Minute-time.Second), 5*time.Minute))
	assert.False(t, c.Expired(issued.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, c.Expired(issued.Add(5*time.Minute+time.Second), 5*time.Minute))
}

func TestUser_CloneDetachesPointers(t *testing.T) {
	pic := "a.png"
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	u := User{ID: "1", ProfilePicture: &pic, LastLoginAt: &at}

	c := u.Clone()
	*c.ProfilePicture = "b.png"
	*c.LastLoginAt = at.Add(time.Hour)

	assert.Equal(t, "a.png", *u.ProfilePicture)
	assert.Equal(t, at, *u.LastLoginAt)
}
