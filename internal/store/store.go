package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFileName = "rig.sqlite"

// Persisted keys. One flat namespace, each key holding one JSON document.
const (
	KeyProjects            = "projects"
	KeyCurrentProjectIndex = "currentProjectIndex"
	KeyExtensionViews      = "extensionViews"
	KeyRigLogin            = "rigLogin"
)

// Store is the durable key/value port backing all stateful components.
// Every write is a full-document replace of a single key; there are no
// partial updates and no cross-key transactions except SetJSONBatch.
type Store struct {
	Dir string
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rig"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when the web preview reads while
	// the CLI writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// GetJSON reads one key into v. A missing key is not an error: it reports
// found == false and leaves v untouched.
func (s Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT v FROM state WHERE k = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON replaces one key with the JSON encoding of v.
func (s Store) SetJSON(ctx context.Context, key string, v any) error {
	return s.SetJSONBatch(ctx, []KV{{Key: key, Value: v}})
}

// KV pairs a key with the value to persist under it.
type KV struct {
	Key   string
	Value any
}

// SetJSONBatch writes several keys in one transaction. Used where related
// keys must never be observed half-written (projects + currentProjectIndex).
func (s Store) SetJSONBatch(ctx context.Context, kvs []KV) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	for _, kv := range kvs {
		raw, err := json.Marshal(kv.Value)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO state(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
			kv.Key, string(raw), nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s Store) Delete(ctx context.Context, key string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM state WHERE k = ?`, key)
	return err
}
