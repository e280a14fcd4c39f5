package store

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore 每台主机一行，供多台机器共享同一数据库
type PGStore struct {
	db   *sql.DB
	host string
}

func NewPGStore(db *sql.DB, host string) *PGStore {
	return &PGStore{db: db, host: host}
}

func (s *PGStore) Get(ctx context.Context) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT signature, country FROM _netstatus_cache WHERE host=$1`, s.host,
	).Scan(&e.Signature, &e.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *PGStore) Set(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO _netstatus_cache(host, signature, country)
        VALUES($1,$2,$3)
        ON CONFLICT (host) DO UPDATE SET signature=EXCLUDED.signature, country=EXCLUDED.country, updated_at=now()`,
		s.host, e.Signature, e.Country,
	)
	return err
}

func (s *PGStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM _netstatus_cache WHERE host=$1`, s.host)
	return err
}
