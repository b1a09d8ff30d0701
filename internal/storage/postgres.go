// Package storage implements persistence for pool descriptors, adapted
// from the teacher's PostgreSQL block/transaction store: same
// pgxpool-backed connection setup and query style, retargeted at a
// single "pools" table holding one row per shielded pool.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccoin/shieldpool/internal/pool"
)

// Common errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate entry")
	ErrDBConnection   = errors.New("database connection error")
	ErrSchemaMismatch = errors.New("stored schema version is newer than this binary understands")
)

// Config holds database configuration, unchanged shape from the
// teacher's storage.Config.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns default database configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "shieldpool",
		Database: "shieldpool",
		SSLMode:  "disable",
		MaxConns: 20,
	}
}

// PostgresStore implements persistent storage for pool descriptors.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store.
func NewPostgresStore(ctx context.Context, cfg *Config) (*PostgresStore, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pgxPool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}
	if err := pgxPool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &PostgresStore{pool: pgxPool}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// SaveDescriptor upserts a pool's descriptor row.
func (s *PostgresStore) SaveDescriptor(ctx context.Context, id pool.Handle, d pool.Descriptor) error {
	if d.SchemaVersion > currentSchemaVersion {
		return ErrSchemaMismatch
	}

	var pending interface{}
	if d.PendingOwner != nil {
		pending = d.PendingOwner[:]
	}

	query := `
		INSERT INTO pools (
			id, owner, pending_owner, token_identity, vault_handle,
			tree_depth, history_size, paused, vk_configured, vk_locked,
			deposit_count, redemption_count, cumulative_deposited,
			cumulative_redeemed, max_deposit, schema_version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			owner = EXCLUDED.owner,
			pending_owner = EXCLUDED.pending_owner,
			paused = EXCLUDED.paused,
			vk_configured = EXCLUDED.vk_configured,
			vk_locked = EXCLUDED.vk_locked,
			deposit_count = EXCLUDED.deposit_count,
			redemption_count = EXCLUDED.redemption_count,
			cumulative_deposited = EXCLUDED.cumulative_deposited,
			cumulative_redeemed = EXCLUDED.cumulative_redeemed,
			max_deposit = EXCLUDED.max_deposit,
			schema_version = EXCLUDED.schema_version
	`

	_, err := s.pool.Exec(ctx, query,
		id[:], d.Owner[:], pending, d.TokenIdentity[:], d.VaultHandle[:],
		d.TreeDepth, d.HistorySize, d.Paused, d.VKConfigured, d.VKLocked,
		d.DepositCount, d.RedemptionCount, d.CumulativeDeposited,
		d.CumulativeRedeemed, d.MaxDeposit, d.SchemaVersion,
	)
	return err
}

// GetDescriptor loads a pool's descriptor row.
func (s *PostgresStore) GetDescriptor(ctx context.Context, id pool.Handle) (pool.Descriptor, error) {
	var d pool.Descriptor
	var owner, token, vault []byte
	var pending []byte

	row := s.pool.QueryRow(ctx, `
		SELECT owner, pending_owner, token_identity, vault_handle,
			tree_depth, history_size, paused, vk_configured, vk_locked,
			deposit_count, redemption_count, cumulative_deposited,
			cumulative_redeemed, max_deposit, schema_version
		FROM pools WHERE id = $1
	`, id[:])

	err := row.Scan(
		&owner, &pending, &token, &vault,
		&d.TreeDepth, &d.HistorySize, &d.Paused, &d.VKConfigured, &d.VKLocked,
		&d.DepositCount, &d.RedemptionCount, &d.CumulativeDeposited,
		&d.CumulativeRedeemed, &d.MaxDeposit, &d.SchemaVersion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}
	if d.SchemaVersion > currentSchemaVersion {
		return d, ErrSchemaMismatch
	}

	copy(d.Owner[:], owner)
	copy(d.TokenIdentity[:], token)
	copy(d.VaultHandle[:], vault)
	if pending != nil {
		var h pool.Handle
		copy(h[:], pending)
		d.PendingOwner = &h
	}
	return d, nil
}

// currentSchemaVersion is the newest descriptor encoding this store
// understands; bump alongside pool.Descriptor field changes.
const currentSchemaVersion = 1
