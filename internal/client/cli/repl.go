package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	SendCode(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Progress(ctx context.Context, args []string) error
	Mood(ctx context.Context, args []string) error
	Journal(ctx context.Context, args []string) error
	Answer(ctx context.Context, args []string) error
	XP(ctx context.Context, args []string) error
	ResetCards(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: sendcode, verify, register, login, exit"
	userHelp  = "Available commands: whoami, profile, progress, mood, journal, answer, xp, resetcards, theme, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". The first
// word of a line selects the handler; the rest are its arguments. Handler
// errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	handlers := map[string]func(context.Context, []string) error{
		"sendcode":   a.SendCode,
		"verify":     a.Verify,
		"register":   a.Register,
		"login":      a.Login,
		"logout":     a.Logout,
		"whoami":     a.WhoAmI,
		"profile":    a.Profile,
		"progress":   a.Progress,
		"mood":       a.Mood,
		"journal":    a.Journal,
		"answer":     a.Answer,
		"xp":         a.XP,
		"resetcards": a.ResetCards,
		"theme":      a.Theme,
	}

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mc %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := handlers[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h(ctx, args); err != nil {
			printlnFn("Error:", errorMessage(err))
		}
	}
}
