// Package cli provides the interactive MindCandy command-line client.
//
// It wires configuration, the key/value storage, the account store and the
// session manager, then runs a REPL. A guest can request and verify an
// email code, register and log in; a logged in user can log moods and
// journal entries, score flashcards, collect battle XP and change settings
// and profile fields.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
