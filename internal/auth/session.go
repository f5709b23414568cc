package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SessionFile holds the logged-in username, relative to the workspace.
const SessionFile = ".siklus-session"

var ErrNotLoggedIn = errors.New("not logged in; run `siklus login` first")

// Session is the login state of one workspace.
type Session struct {
	path string
}

func NewSession(root string) *Session {
	return &Session{path: filepath.Join(root, SessionFile)}
}

func (s *Session) Login(username string) error {
	if err := os.WriteFile(s.path, []byte(username+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Logout clears the session. Logging out twice is not an error.
func (s *Session) Logout() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Current returns the logged-in username.
func (s *Session) Current() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNotLoggedIn
	}
	return name, nil
}
