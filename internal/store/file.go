package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/model"
)

// FileStore keeps every user in one JSON document that is read and
// rewritten in full on each operation.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a FileStore at path. The file is created on first
// save; a missing file loads as an empty state.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Load(_ context.Context) (map[string]model.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]model.User{}, nil
	}

	var recs map[string]userRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
	}

	users := make(map[string]model.User, len(recs))
	for name, rec := range recs {
		u, err := fromRecord(name, rec)
		if err != nil {
			return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
		}
		users[name] = u
	}
	return users, nil
}

// Save replaces the file. The new content is written to a temporary file
// in the same directory and renamed over the old one.
func (s *FileStore) Save(_ context.Context, users map[string]model.User) error {
	recs := make(map[string]userRecord, len(users))
	for name, u := range users {
		recs[name] = toRecord(u)
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}

	s.logger.Debug("store saved", zap.String("path", s.path), zap.Int("users", len(users)))
	return nil
}

func (s *FileStore) Get(ctx context.Context, username string) (model.User, error) {
	users, err := s.Load(ctx)
	if err != nil {
		return model.User{}, err
	}
	u, ok := users[username]
	if !ok {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return u, nil
}

func (s *FileStore) Put(ctx context.Context, u model.User) error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	users, err := s.Load(ctx)
	if err != nil {
		return err
	}
	users[u.Username] = u
	return s.Save(ctx, users)
}

func (s *FileStore) Close() error { return nil }
