// Package session tracks who is logged in on this device and exposes the
// account operations the user interface calls. The login survives restarts
// through a signed marker kept in the key/value store.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/auth"
	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/common"
	"github.com/dmitrijs2005/mindcandy/internal/logging"
)

// DefaultTTL is how long a login is remembered.
const DefaultTTL = 30 * 24 * time.Hour

// AccountStore is the part of store.Store the manager depends on.
type AccountStore interface {
	GenerateVerificationCode() (string, error)
	IssueVerificationCode(ctx context.Context, email, code string) (string, error)
	CheckVerificationCode(ctx context.Context, email, code string) (bool, error)
	DeleteVerificationCode(ctx context.Context, email string) error

	RegisterUser(ctx context.Context, in models.RegisterInput) (models.User, error)
	LoginUser(ctx context.Context, identifier, password string) (models.User, error)
	Logout(ctx context.Context, id string) error
	GetUser(id string) (models.User, bool)
	UpdateUserProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.User, error)

	GetProgress(id string) models.Progress
	UpdateProgress(ctx context.Context, id string, patch models.ProgressPatch) (models.Progress, error)
}

// MarkerStore holds the session marker and its signing secret.
// kv.Repository satisfies it.
type MarkerStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

type Options struct {
	// Secret signs the marker. When empty a random secret is generated once
	// and kept in the MarkerStore.
	Secret []byte
	TTL    time.Duration
	Logger logging.Logger
	Now    func() time.Time
}

type Manager struct {
	mu       sync.RWMutex
	user     *models.User
	progress *models.Progress

	accounts AccountStore
	markers  MarkerStore
	secret   []byte
	ttl      time.Duration
	log      logging.Logger
	now      func() time.Time
}

// NewManager builds a Manager and restores the previous login, if the marker
// is valid and still points at an existing user. Any problem with the marker
// leaves the manager logged out.
func NewManager(ctx context.Context, accounts AccountStore, markers MarkerStore, opts Options) (*Manager, error) {
	m := &Manager{
		accounts: accounts,
		markers:  markers,
		secret:   opts.Secret,
		ttl:      opts.TTL,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.log == nil {
		m.log = logging.Nop()
	}
	if m.now == nil {
		m.now = time.Now
	}

	if len(m.secret) == 0 {
		secret, err := m.loadSecret(ctx)
		if err != nil {
			return nil, err
		}
		m.secret = secret
	}

	m.restore(ctx)
	return m, nil
}

func (m *Manager) loadSecret(ctx context.Context) ([]byte, error) {
	b, err := m.markers.Get(ctx, common.SessionSecretKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read session secret, generating a new one", "error", err)
	}
	if len(b) > 0 {
		return b, nil
	}

	s, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := m.markers.Set(ctx, common.SessionSecretKey, []byte(s)); err != nil {
		m.log.Warn(ctx, "failed to store session secret, logins will not survive a restart", "error", err)
	}
	return []byte(s), nil
}

func (m *Manager) restore(ctx context.Context) {
	b, err := m.markers.Get(ctx, common.CurrentUserKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read session marker", "error", err)
		return
	}
	if b == nil {
		return
	}

	id, err := auth.GetUserIDFromToken(string(b), m.secret, m.now())
	if err != nil {
		if auth.IsExpired(err) {
			m.log.Info(ctx, "session expired")
		} else {
			m.log.Warn(ctx, "discarding invalid session marker", "error", err)
		}
		m.dropMarker(ctx)
		return
	}

	u, ok := m.accounts.GetUser(id)
	if !ok {
		m.log.Warn(ctx, "session marker points at unknown user", "user_id", id)
		m.dropMarker(ctx)
		return
	}

	p := m.accounts.GetProgress(id)
	m.user, m.progress = &u, &p
	m.log.Info(ctx, "session restored", "user_id", id)
}

func (m *Manager) dropMarker(ctx context.Context) {
	if err := m.markers.Delete(ctx, common.CurrentUserKey); err != nil {
		m.log.Warn(ctx, "failed to delete session marker", "error", err)
	}
}

// writeMarker records id as the logged in user. Failure only costs the
// login surviving a restart, so it is logged.
func (m *Manager) writeMarker(ctx context.Context, id string) {
	token, err := auth.GenerateToken(id, m.secret, m.ttl, m.now())
	if err == nil {
		err = m.markers.Set(ctx, common.CurrentUserKey, []byte(token))
	}
	if err != nil {
		m.log.Warn(ctx, "failed to write session marker", "user_id", id, "error", err)
	}
}

// SendVerificationCode issues a fresh code for email and returns it so the
// caller can show it; there is no mail delivery.
func (m *Manager) SendVerificationCode(ctx context.Context, email string) (string, error) {
	code, err := m.accounts.GenerateVerificationCode()
	if err != nil {
		return "", err
	}
	return m.accounts.IssueVerificationCode(ctx, email, code)
}

func (m *Manager) VerifyEmail(ctx context.Context, email, code string) (bool, error) {
	return m.accounts.CheckVerificationCode(ctx, email, code)
}

// Register creates the account and logs it in. The verification code of
// the email is consumed.
func (m *Manager) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.accounts.RegisterUser(ctx, in)
	if err != nil {
		return models.User{}, err
	}

	m.setCurrent(u)
	m.writeMarker(ctx, u.ID)
	if err := m.accounts.DeleteVerificationCode(ctx, in.Email); err != nil {
		m.log.Warn(ctx, "failed to delete consumed verification code", "email", in.Email, "error", err)
	}
	return u, nil
}

func (m *Manager) Login(ctx context.Context, c models.Credentials) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.accounts.LoginUser(ctx, c.Identifier, c.Password)
	if err != nil {
		return models.User{}, err
	}

	m.setCurrent(u)
	m.writeMarker(ctx, u.ID)
	return u, nil
}

func (m *Manager) setCurrent(u models.User) {
	p := m.accounts.GetProgress(u.ID)
	u = u.Clone()
	m.user, m.progress = &u, &p
}

// Logout ends the session. State and marker are cleared even when the store
// reports an error; such errors are returned joined.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.user != nil {
		if err := m.accounts.Logout(ctx, m.user.ID); err != nil {
			errs = append(errs, err)
		}
		m.log.Info(ctx, "user logged out", "user_id", m.user.ID)
	}

	m.user, m.progress = nil, nil
	if err := m.markers.Delete(ctx, common.CurrentUserKey); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return models.User{}, common.ErrNoActiveSession
	}
	u, err := m.accounts.UpdateUserProfile(ctx, m.user.ID, patch)
	if err != nil {
		return models.User{}, err
	}
	cur := u.Clone()
	m.user = &cur
	return u, nil
}

func (m *Manager) UpdateProgress(ctx context.Context, patch models.ProgressPatch) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updateProgress(ctx, patch)
}

// updateProgress requires m.mu held for writing.
func (m *Manager) updateProgress(ctx context.Context, patch models.ProgressPatch) (models.Progress, error) {
	if m.user == nil {
		return models.Progress{}, common.ErrNoActiveSession
	}
	p, err := m.accounts.UpdateProgress(ctx, m.user.ID, patch)
	if err != nil {
		return models.Progress{}, err
	}
	cur := p.Clone()
	m.progress = &cur
	return p, nil
}

func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return models.User{}, false
	}
	return m.user.Clone(), true
}

func (m *Manager) CurrentProgress() (models.Progress, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.progress == nil {
		return models.Progress{}, false
	}
	return m.progress.Clone(), true
}

func (m *Manager) IsLoggedIn() bool {
	return m.State() == LoggedIn
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return LoggedOut
	}
	return LoggedIn
}
