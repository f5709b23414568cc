package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/siklus/internal/journal"
	"github.com/cleared-dev/siklus/internal/model"
)

const (
	userFile        = "user.yaml"
	journalFile     = "journal.csv"
	adjustmentsFile = "adjustments.csv"
)

type dirUser struct {
	Password string `yaml:"password"`
}

// DirStore keeps one directory per user:
//
//	<dir>/<username>/user.yaml
//	<dir>/<username>/journal.csv
//	<dir>/<username>/adjustments.csv
//
// The CSV files use the journal codec so they diff cleanly under git.
type DirStore struct {
	dir    string
	logger *zap.Logger
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string, logger *zap.Logger) *DirStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirStore{dir: dir, logger: logger}
}


func (s *DirStore) Load(_ context.Context) (map[string]model.User, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading users dir: %w", err)
	}

	users := make(map[string]model.User, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		u, err := s.read(e.Name())
		if errors.Is(err, ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users[u.Username] = u
	}
	return users, nil
}

// Save writes every user in users. Users missing from the map are left on
// disk; records are never deleted.
func (s *DirStore) Save(_ context.Context, users map[string]model.User) error {
	for _, u := range users {
		if err := s.write(u); err != nil {
			return err
		}
	}
	s.logger.Debug("store saved", zap.String("dir", s.dir), zap.Int("users", len(users)))
	return nil
}

func (s *DirStore) Get(_ context.Context, username string) (model.User, error) {
	if err := ValidateUsername(username); err != nil {
		return model.User{}, err
	}
	return s.read(username)
}

func (s *DirStore) Put(_ context.Context, u model.User) error {
	return s.write(u)
}

func (s *DirStore) Close() error { return nil }

func (s *DirStore) read(username string) (model.User, error) {
	base := filepath.Join(s.dir, username)

	data, err := os.ReadFile(filepath.Join(base, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("reading %s: %w", userFile, err)
	}
	var du dirUser
	if err := yaml.Unmarshal(data, &du); err != nil {
		return model.User{}, fmt.Errorf("parsing %s for %q: %w", userFile, username, err)
	}

	j, err := readJournal(filepath.Join(base, journalFile))
	if err != nil {
		return model.User{}, fmt.Errorf("user %q: %w", username, err)
	}
	adj, err := readJournal(filepath.Join(base, adjustmentsFile))
	if err != nil {
		return model.User{}, fmt.Errorf("user %q: %w", username, err)
	}

	return model.User{Username: username, Password: du.Password, Journal: j, Adjustments: adj}, nil
}

func (s *DirStore) write(u model.User) error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	base := filepath.Join(s.dir, u.Username)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("creating user dir: %w", err)
	}

	data, err := yaml.Marshal(dirUser{Password: u.Password})
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", userFile, err)
	}
	if err := os.WriteFile(filepath.Join(base, userFile), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", userFile, err)
	}
	if err := writeJournal(filepath.Join(base, journalFile), u.Journal); err != nil {
		return err
	}
	return writeJournal(filepath.Join(base, adjustmentsFile), u.Adjustments)
}

func readJournal(path string) (model.Journal, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	lines, err := journal.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

func writeJournal(path string, lines model.Journal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := journal.WriteLines(f, lines); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
