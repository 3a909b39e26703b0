// Package store keeps the account data of the app: users, outstanding email
// verification codes and per-user progress. Everything lives in memory and
// is written through to a kv.Repository on every mutation.
//
// A Store is safe for concurrent use.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mindcandy/internal/common"
	"github.com/dmitrijs2005/mindcandy/internal/cryptox"
	"github.com/dmitrijs2005/mindcandy/internal/logging"
)

// DefaultCodeTTL is how long an issued verification code stays valid.
const DefaultCodeTTL = 5 * time.Minute

type Options struct {
	// CodeTTL defaults to DefaultCodeTTL.
	CodeTTL time.Duration
	// SendDelay simulates email delivery latency after a code is issued.
	SendDelay time.Duration
	// Strict makes a failed durable write undo the in-memory change and
	// return an error wrapping common.ErrPersistence. Otherwise the failure
	// is only logged.
	Strict bool
	Hasher *cryptox.Hasher
	Logger logging.Logger
	Now    func() time.Time
}

type Store struct {
	mu   sync.Mutex
	repo kv.Repository

	users      map[string]models.User
	order      []string       // user ids in registration order
	position   map[string]int // id -> index in order
	byEmail    map[string]string
	byUsername map[string]string

	codes    map[string]models.VerificationCode
	progress map[string]models.Progress

	codeTTL   time.Duration
	sendDelay time.Duration
	strict    bool
	hasher    *cryptox.Hasher
	log       logging.Logger
	now       func() time.Time
}

// New builds a Store and loads whatever repo holds. A value that cannot be
// read or decoded is copied to "<key>.bak" and the collection starts empty;
// New itself never fails.
func New(ctx context.Context, repo kv.Repository, opts Options) *Store {
	s := &Store{
		repo:       repo,
		users:      make(map[string]models.User),
		position:   make(map[string]int),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		codes:      make(map[string]models.VerificationCode),
		progress:   make(map[string]models.Progress),
		codeTTL:    opts.CodeTTL,
		sendDelay:  opts.SendDelay,
		strict:     opts.Strict,
		hasher:     opts.Hasher,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if s.codeTTL <= 0 {
		s.codeTTL = DefaultCodeTTL
	}
	if s.hasher == nil {
		s.hasher = cryptox.NewHasher(cryptox.DefaultParams)
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	var users []models.User
	if s.load(ctx, common.UsersKey, &users) {
		for _, u := range users {
			if _, dup := s.users[u.ID]; dup || u.ID == "" {
				s.log.Warn(ctx, "skipping stored user with missing or duplicate id", "id", u.ID)
				continue
			}
			s.insertUser(u)
		}
	}

	var codes map[string]models.VerificationCode
	if s.load(ctx, common.VerificationCodesKey, &codes) && codes != nil {
		s.codes = codes
	}

	var raw map[string]json.RawMessage
	if s.load(ctx, common.UserProgressKey, &raw) {
		for id, r := range raw {
			p := models.DefaultProgress()
			if err := json.Unmarshal(r, &p); err != nil {
				s.log.Warn(ctx, "skipping undecodable progress record", "user_id", id, "error", err)
				continue
			}
			s.progress[id] = p
		}
	}

	s.log.Debug(ctx, "store loaded",
		"users", len(s.users), "codes", len(s.codes), "progress", len(s.progress))
}

// load decodes key into dst and reports whether a value was decoded.
func (s *Store) load(ctx context.Context, key string, dst any) bool {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "failed to read stored value, starting empty", "key", key, "error", err)
		return false
	}
	if b == nil {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Error(ctx, "failed to decode stored value, starting empty", "key", key, "error", err)
		s.backup(ctx, key, b)
		return false
	}
	return true
}

func (s *Store) backup(ctx context.Context, key string, raw []byte) {
	bak := key + common.BackupSuffix
	if err := s.repo.Set(ctx, bak, raw); err != nil {
		s.log.Error(ctx, "failed to back up undecodable value", "key", bak, "error", err)
		return
	}
	s.log.Warn(ctx, "undecodable value backed up", "key", bak)
}

type collection uint8

const (
	usersCollection collection = 1 << iota
	codesCollection
	progressCollection
)

// persist writes the dirty collections as one batch. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, dirty collection) error {
	values := make(map[string][]byte, 3)

	if dirty&usersCollection != 0 {
		users := make([]models.User, 0, len(s.order))
		for _, id := range s.order {
			users = append(users, s.users[id])
		}
		b, err := json.Marshal(users)
		if err != nil {
			return fmt.Errorf("encode users: %w", err)
		}
		values[common.UsersKey] = b
	}
	if dirty&codesCollection != 0 {
		b, err := json.Marshal(s.codes)
		if err != nil {
			return fmt.Errorf("encode verification codes: %w", err)
		}
		values[common.VerificationCodesKey] = b
	}
	if dirty&progressCollection != 0 {
		b, err := json.Marshal(s.progress)
		if err != nil {
			return fmt.Errorf("encode progress: %w", err)
		}
		values[common.UserProgressKey] = b
	}

	return s.repo.SetMany(ctx, values)
}

// save persists dirty and applies the failure policy: undo runs only in
// strict mode. Callers hold s.mu.
func (s *Store) save(ctx context.Context, dirty collection, undo func()) error {
	err := s.persist(ctx, dirty)
	if err == nil {
		return nil
	}
	if !s.strict {
		s.log.Warn(ctx, "failed to persist change, keeping it in memory only", "error", err)
		return nil
	}
	undo()
	s.log.Error(ctx, "failed to persist change, rolled back", "error", err)
	return fmt.Errorf("%w: %w", common.ErrPersistence, err)
}

func (s *Store) insertUser(u models.User) {
	s.users[u.ID] = u
	s.position[u.ID] = len(s.order)
	s.order = append(s.order, u.ID)
	if _, taken := s.byEmail[u.Email]; !taken {
		s.byEmail[u.Email] = u.ID
	}
	if _, taken := s.byUsername[u.Username]; !taken {
		s.byUsername[u.Username] = u.ID
	}
}

// removeLastUser undoes the most recent insertUser.
func (s *Store) removeLastUser(id string) {
	u := s.users[id]
	delete(s.users, id)
	delete(s.position, id)
	s.order = s.order[:len(s.order)-1]
	if s.byEmail[u.Email] == id {
		delete(s.byEmail, u.Email)
	}
	if s.byUsername[u.Username] == id {
		delete(s.byUsername, u.Username)
	}
}

// reindex moves the index entries of a user whose email or username changed.
func (s *Store) reindex(before, after models.User) {
	if before.Email != after.Email {
		if s.byEmail[before.Email] == before.ID {
			delete(s.byEmail, before.Email)
		}
		s.byEmail[after.Email] = after.ID
	}
	if before.Username != after.Username {
		if s.byUsername[before.Username] == before.ID {
			delete(s.byUsername, before.Username)
		}
		s.byUsername[after.Username] = after.ID
	}
}
