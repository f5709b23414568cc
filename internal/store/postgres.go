package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/model"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS siklus_users (
	username    text PRIMARY KEY,
	password    text NOT NULL,
	journal     jsonb NOT NULL DEFAULT '[]',
	adjustments jsonb NOT NULL DEFAULT '[]'
)`

const upsertSQL = `INSERT INTO siklus_users (username, password, journal, adjustments)
VALUES ($1, $2, $3::jsonb, $4::jsonb)
ON CONFLICT (username) DO UPDATE
SET password = EXCLUDED.password, journal = EXCLUDED.journal, adjustments = EXCLUDED.adjustments`

// PostgresStore keeps one row per user; both journals are jsonb arrays in
// the same line format as the file store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// OpenPostgres connects to dsn and creates the users table if needed.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating siklus_users: %w", err)
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]model.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT username, password, journal, adjustments FROM siklus_users`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]model.User)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[u.Username] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}

// Save upserts every user in one transaction. Rows for users missing from
// the map are kept.
func (s *PostgresStore) Save(ctx context.Context, users map[string]model.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for name, u := range users {
		u.Username = name
		if err := upsert(ctx, tx, u); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing users: %w", err)
	}
	s.logger.Debug("store saved", zap.Int("users", len(users)))
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, username string) (model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT username, password, journal, adjustments FROM siklus_users WHERE username = $1`, username)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return u, err
}

func (s *PostgresStore) Put(ctx context.Context, u model.User) error {
	return upsert(ctx, s.pool, u)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsert(ctx context.Context, db execer, u model.User) error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	rec := toRecord(u)
	j, err := json.Marshal(rec.Journal)
	if err != nil {
		return fmt.Errorf("marshaling journal: %w", err)
	}
	adj, err := json.Marshal(rec.Adjustments)
	if err != nil {
		return fmt.Errorf("marshaling adjustments: %w", err)
	}
	if _, err := db.Exec(ctx, upsertSQL, u.Username, u.Password, string(j), string(adj)); err != nil {
		return fmt.Errorf("upserting user %q: %w", u.Username, err)
	}
	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var name, password string
	var j, adj []byte
	if err := row.Scan(&name, &password, &j, &adj); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("scanning user: %w", err)
	}

	rec := userRecord{Password: password}
	if err := json.Unmarshal(j, &rec.Journal); err != nil {
		return model.User{}, fmt.Errorf("parsing journal of %q: %w", name, err)
	}
	if err := json.Unmarshal(adj, &rec.Adjustments); err != nil {
		return model.User{}, fmt.Errorf("parsing adjustments of %q: %w", name, err)
	}
	return fromRecord(name, rec)
}
