// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package filterstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
)

// gcDiscardRatio is the value-log rewrite threshold used by Sweep.
const gcDiscardRatio = 0.5

// BadgerStore keeps filter states in BadgerDB. Each entry carries a
// native TTL, so Badger hides expired keys itself; Sweep reclaims the
// value-log space they leave behind.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	own bool
}

// OpenBadgerStore opens (or creates) a database at path. An empty path
// opens an in-memory database.
func OpenBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for filter store: %w", err)
	}
	s := NewBadgerStore(db, ttl)
	s.own = true
	return s, nil
}

// NewBadgerStore wraps an open database. The caller keeps ownership of db.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerStore{db: db, ttl: ttl}
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return BackendBadger }

// Save implements Store.
func (s *BadgerStore) Save(_ context.Context, id string, state models.FilterState) (err error) {
	defer func() { observe(BackendBadger, "save", err) }()
	if err := checkID(id); err != nil {
		return err
	}

	data, err := encode(state, time.Now())
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(keyPrefix+id), data).WithTTL(s.ttl))
	})
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrUnavailable, id, err)
	}
	return nil
}

// Load implements Store.
func (s *BadgerStore) Load(_ context.Context, id string) (state models.FilterState, err error) {
	defer func() { observe(BackendBadger, "load", err) }()

	var data []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.FilterState{}, notFound(id)
	}
	if err != nil {
		return models.FilterState{}, fmt.Errorf("%w: load %s: %v", ErrUnavailable, id, err)
	}

	state, err = decode(data)
	if err != nil {
		return models.FilterState{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return state, nil
}

// Delete implements Store.
func (s *BadgerStore) Delete(_ context.Context, id string) (err error) {
	defer func() { observe(BackendBadger, "delete", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyPrefix + id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, id, err)
	}
	return nil
}

// Sweep runs value-log GC until Badger reports nothing left to rewrite
// and returns the number of rewritten files. In-memory databases have no
// value log and always report zero.
func (s *BadgerStore) Sweep(ctx context.Context) (int, error) {
	if s.db.Opts().InMemory {
		return 0, nil
	}
	rounds := 0
	for ctx.Err() == nil {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		if err != nil {
			return rounds, fmt.Errorf("badger value log gc: %w", err)
		}
		rounds++
	}
	if rounds > 0 {
		logging.Debug().Int("rounds", rounds).Msg("Filter store value log GC reclaimed space")
	}
	return rounds, nil
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if s.own {
		return s.db.Close()
	}
	return nil
}
