// Package localstore implements the durable local note collection used by
// guest sessions, plus the persisted session profile.
//
// Durability model: badger is the underlying key-value store, but the unit
// of durability is the whole record. The notes collection lives under one
// key as JSON text and is rewritten in full after every mutation; the user
// profile lives under a second key. Concurrent writers are not coordinated;
// the last writer wins.
package localstore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// badgerLogger adapts slog to badger's Logger interface.
type badgerLogger struct {
	l *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.l.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.l.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.l.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.l.Debug(fmt.Sprintf(format, args...))
}

// OpenDB opens the client's durable store under dir, creating the directory
// if needed. The caller must Close the returned DB.
func OpenDB(dir string, logger *slog.Logger) (*badger.DB, error) {
	if err := os.MkdirAll(filepath.Clean(dir), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithSyncWrites(true)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{l: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return db, nil
}

// OpenInMemoryDB opens a non-persistent store, used in tests.
func OpenInMemoryDB() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return badger.Open(opts)
}
