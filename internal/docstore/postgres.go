package docstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a PostgreSQL connection pool. When schema is non-empty it
// becomes the search_path of every connection, so collections resolve inside it.
func NewPool(ctx context.Context, connString, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}
	if schema != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = schema
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// querier is the subset of *pgxpool.Pool used by PgStore.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PgStore keeps each collection in its own table holding one jsonb document per row.
type PgStore struct {
	db      querier
	close   func()
	timeout time.Duration
}

// Ensure PgStore implements Store at compile time.
var _ Store = (*PgStore)(nil)

// NewPgStore creates a PgStore backed by the given pool. Every call is bounded by timeout.
func NewPgStore(pool *pgxpool.Pool, timeout time.Duration) *PgStore {
	return &PgStore{db: pool, close: pool.Close, timeout: timeout}
}

func (s *PgStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Insert appends doc to the collection table.
func (s *PgStore) Insert(ctx context.Context, collection string, doc any) error {
	if err := validateCollection(collection); err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.db.Exec(ctx,
		`INSERT INTO `+pgx.Identifier{collection}.Sanitize()+` (doc) VALUES ($1)`,
		body,
	)
	if err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}
	return nil
}

// FindAll returns documents in insertion order, with projected fields removed.
func (s *PgStore) FindAll(ctx context.Context, collection string, opts ...FindOption) ([]json.RawMessage, error) {
	if err := validateCollection(collection); err != nil {
		return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
	}
	o := buildFindOptions(opts)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx,
		`SELECT doc - $1::text[] FROM `+pgx.Identifier{collection}.Sanitize()+`
		 ORDER BY seq
		 LIMIT $2`,
		o.exclude, o.limit,
	)
	if err != nil {
		return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
		}
		docs = append(docs, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
	}
	return docs, nil
}

// Ping checks that the database is reachable.
func (s *PgStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		return &StorageError{Op: OpPing, Err: err}
	}
	return nil
}

// Close releases the underlying pool.
func (s *PgStore) Close() {
	if s.close != nil {
		s.close()
	}
}
