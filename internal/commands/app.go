package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/accounts"
	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/auth"
	"github.com/cleared-dev/siklus/internal/config"
	"github.com/cleared-dev/siklus/internal/gitops"
	"github.com/cleared-dev/siklus/internal/journal"
	"github.com/cleared-dev/siklus/internal/logging"
	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/render"
	"github.com/cleared-dev/siklus/internal/store"
)

// app is everything a command needs from one workspace.
type app struct {
	root     string
	cfg      *config.Config
	logger   *zap.Logger
	store    store.Store
	accounts *accounts.Service
	session  *auth.Session
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	root, err := filepath.Abs(opts.workspace)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace: %w", err)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.LoadWithEnv(cfgPath, filepath.Join(root, ".env"))
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, root, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &app{
		root:     root,
		cfg:      cfg,
		logger:   logger,
		store:    st,
		accounts: chart,
		session:  auth.NewSession(root),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) authService() *auth.Service {
	return auth.NewService(a.store, a.logger)
}

// journals returns a journal service. Account names are checked against
// the chart only when journal.restrict_accounts is set.
func (a *app) journals() *journal.Service {
	if a.cfg.Journal.RestrictAccounts {
		return journal.NewService(a.accounts, a.logger)
	}
	return journal.NewService(nil, a.logger)
}

func (a *app) formatter() (*render.Formatter, error) {
	return render.NewFormatter(a.cfg.Business.Currency)
}

// currentUser loads the record of the logged-in user.
func (a *app) currentUser(ctx context.Context) (model.User, error) {
	name, err := a.session.Current()
	if err != nil {
		return model.User{}, err
	}
	u, err := a.store.Get(ctx, name)
	if errors.Is(err, store.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("session user %q no longer exists: %w", name, err)
	}
	return u, err
}

// persist stores u, commits the workspace when git.auto_commit is set and
// records the action in the audit log.
func (a *app) persist(ctx context.Context, u model.User, action, details, entryID string) error {
	if err := a.store.Put(ctx, u); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return a.record(u.Username, action, details, entryID)
}

// record commits the workspace and appends the audit row for an action
// whose changes are already on disk.
func (a *app) record(user, action, details, entryID string) error {
	hash, err := a.commit(fmt.Sprintf("%s: %s", action, details))
	if err != nil {
		return err
	}
	return a.audit(user, action, details, entryID, hash)
}

func (a *app) commit(message string) (string, error) {
	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.root) {
		return "", nil
	}
	hash, err := gitops.CommitAll(a.root, message, gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail})
	if err != nil {
		return "", fmt.Errorf("committing workspace: %w", err)
	}
	return hash, nil
}

func (a *app) audit(user, action, details, entryID, hash string) error {
	err := auditlog.Append(a.root, auditlog.Entry{
		User:       user,
		Action:     action,
		Details:    details,
		EntryID:    entryID,
		CommitHash: hash,
	})
	if err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}
