package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/config"
	"github.com/cleared-dev/siklus/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUsername = errors.New("invalid username")
)

// Store persists user records. Load and Save move the whole state; Get and
// Put address one user. Every backend is last-writer-wins.
type Store interface {
	Load(ctx context.Context) (map[string]model.User, error)
	Save(ctx context.Context, users map[string]model.User) error
	Get(ctx context.Context, username string) (model.User, error)
	Put(ctx context.Context, u model.User) error
	Close() error
}

// Open returns the backend selected by cfg.Store. Relative file and
// directory paths resolve against the workspace root.
func Open(ctx context.Context, root string, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("backend", cfg.Store.Backend))

	switch cfg.Store.Backend {
	case config.BackendFile:
		return NewFileStore(resolve(root, cfg.Store.Path), logger), nil
	case config.BackendDir:
		return NewDirStore(resolve(root, cfg.Store.Path), logger), nil
	case config.BackendRedis:
		return DialRedis(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPrefix, logger)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.Store.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ValidateUsername rejects names that cannot be used as a storage key.
// Surrounding whitespace is rejected because the session file is trimmed.
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidUsername, name)
	}
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\*?[]`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	return nil
}
