package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/accounts"
	"github.com/cleared-dev/siklus/internal/auth"
	"github.com/cleared-dev/siklus/internal/config"
	"github.com/cleared-dev/siklus/internal/gitops"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var name string
	var currency string
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new siklus workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.workspace
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(name)
			if currency != "" {
				cfg.Business.Currency = currency
			}
			switch backend {
			case "", config.BackendFile:
			case config.BackendDir:
				cfg.Store.Backend, cfg.Store.Path = backend, "users"
			case config.BackendRedis, config.BackendPostgres:
				// Connection settings come from siklus.yaml or SIKLUS_* variables.
				cfg.Store.Backend = backend
			default:
				return fmt.Errorf("unknown store backend %q", backend)
			}

			hash, err := runInit(absDir, cfg)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized siklus workspace at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized siklus workspace at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code (default IDR)")
	cmd.Flags().StringVar(&backend, "store-backend", "", "store backend: file, dir, redis or postgres (default file)")

	return cmd
}

func runInit(dir string, cfg *config.Config) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists; workspace is initialized", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(accounts.DefaultChart()).Save(dir); err != nil {
		return "", fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := auth.SessionFile + "\n.env\n*.xlsx\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !cfg.Git.AutoCommit {
		return "", nil
	}
	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+cfg.Business.Name, gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
