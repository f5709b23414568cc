package accounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/siklus/internal/model"
)

// ChartPath is the chart location relative to a workspace root.
var ChartPath = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byName   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Lookups by name
// are case-insensitive.
func NewService(accounts []model.Account) *Service {
	byName := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byName[normalize(a.Name)] = a
	}
	return &Service{accounts: accounts, byName: byName}
}

// Load reads chart-of-accounts.csv from a workspace root. A workspace
// without a chart gets the default chart.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, ChartPath))
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(DefaultChart()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Names returns the account names in chart order.
func (s *Service) Names() []string {
	names := make([]string, len(s.accounts))
	for i, a := range s.accounts {
		names[i] = a.Name
	}
	return names
}

// Get returns an account by name.
func (s *Service) Get(name string) (model.Account, bool) {
	a, ok := s.byName[normalize(name)]
	return a, ok
}

// Exists reports whether an account name is in the chart.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[normalize(name)]
	return ok
}

// TypeOf returns the chart type of an account name.
func (s *Service) TypeOf(name string) (model.AccountType, bool) {
	a, ok := s.Get(name)
	return a.Type, ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, ChartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
