package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mindcandy/internal/client/config"
	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mindcandy/internal/client/session"
	"github.com/dmitrijs2005/mindcandy/internal/client/store"
	"github.com/dmitrijs2005/mindcandy/internal/logging"
)

// AccountService is what the CLI needs from session.Manager.
type AccountService interface {
	SendVerificationCode(ctx context.Context, email string) (string, error)
	VerifyEmail(ctx context.Context, email, code string) (bool, error)
	Register(ctx context.Context, in models.RegisterInput) (models.User, error)
	Login(ctx context.Context, c models.Credentials) (models.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.User, error)

	LogMood(ctx context.Context, mood models.Mood, note string) (models.Progress, error)
	AddJournalEntry(ctx context.Context, content string, mood models.Mood) (models.Progress, error)
	RecordFlashcardAnswer(ctx context.Context, cardID int, correct bool) (models.Progress, bool, error)
	AwardXP(ctx context.Context, amount int) (models.Progress, error)
	ResetFlashcards(ctx context.Context) (models.Progress, error)
	UpdateSettings(ctx context.Context, s models.Settings) (models.Progress, error)

	CurrentUser() (models.User, bool)
	CurrentProgress() (models.Progress, bool)
	IsLoggedIn() bool
}

type App struct {
	config   *config.Config
	accounts AccountService
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	storage  *kv.Storage
}

// NewApp opens the storage named by c.DatabaseDSN and builds the store and
// session manager on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := kv.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN, "error", err)
		return nil, err
	}

	s := store.New(ctx, st.Repo, store.Options{
		CodeTTL:   c.VerificationCodeTTL,
		SendDelay: c.SendCodeDelay,
		Strict:    c.StrictPersistence,
		Logger:    log.With("component", "store"),
	})

	m, err := session.NewManager(ctx, s, st.Repo, session.Options{
		Secret: []byte(c.SessionSecret),
		TTL:    c.SessionTTL,
		Logger: log.With("component", "session"),
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		config:   c,
		accounts: m,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		storage:  st,
	}, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	a.Root(ctx)
	return a.Close()
}

func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

func (a *App) isLoggedIn() bool {
	return a.accounts.IsLoggedIn()
}

func (a *App) getStatus() string {
	u, ok := a.accounts.CurrentUser()
	if !ok {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", u.Username)
}

func (a *App) Root(ctx context.Context) {
	a.println("Welcome to MindCandy (type 'help' for commands)")
	if u, ok := a.accounts.CurrentUser(); ok {
		a.println("Welcome back,", u.Name+"!")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// requireLogin turns the session error into a hint before the command runs.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errors.New("please log in first")
	}
	return nil
}
