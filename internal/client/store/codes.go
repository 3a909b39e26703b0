package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// GenerateVerificationCode returns a six digit code drawn uniformly from
// 100000..999999.
func (s *Store) GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// IssueVerificationCode records code for email, replacing any previous one,
// and then waits for the configured send delay. Delivery is simulated.
func (s *Store) IssueVerificationCode(ctx context.Context, email, code string) (string, error) {
	if err := s.putCode(ctx, email, code); err != nil {
		return "", err
	}

	s.log.Info(ctx, "verification code issued", "email", email)
	s.log.Debug(ctx, "verification code", "email", email, "code", code)

	if s.sendDelay > 0 {
		t := time.NewTimer(s.sendDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return code, nil
}

func (s *Store) putCode(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.codes[email]
	s.codes[email] = models.VerificationCode{Code: code, IssuedAt: s.now()}

	return s.save(ctx, codesCollection, func() {
		if had {
			s.codes[email] = prev
		} else {
			delete(s.codes, email)
		}
	})
}

// CheckVerificationCode reports whether code matches the outstanding code
// for email. An expired code is removed and never matches. A wrong code
// changes nothing.
func (s *Store) CheckVerificationCode(ctx context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	if !ok {
		return false, nil
	}

	if rec.Expired(s.now(), s.codeTTL) {
		delete(s.codes, email)
		err := s.save(ctx, codesCollection, func() { s.codes[email] = rec })
		s.log.Info(ctx, "verification code expired", "email", email)
		return false, err
	}

	if rec.Code != code {
		return false, nil
	}

	verified := rec
	verified.Verified = true
	s.codes[email] = verified
	if err := s.save(ctx, codesCollection, func() { s.codes[email] = rec }); err != nil {
		return false, err
	}
	return true, nil
}

// IsEmailVerified reports whether email has a verified code on record.
// Expiry is not considered here: a verified code stays usable for
// registration until it is deleted.
func (s *Store) IsEmailVerified(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	return ok && rec.Verified
}

// DeleteVerificationCode drops the code for email, if any.
func (s *Store) DeleteVerificationCode(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	if !ok {
		return nil
	}
	delete(s.codes, email)
	return s.save(ctx, codesCollection, func() { s.codes[email] = rec })
}
