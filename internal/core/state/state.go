// Package state persists Pulse run history using BoltDB.
// All writes are transactional; reads use read-only transactions.
package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	v1 "github.com/f9-o/pulse/api/v1"
)

// Bucket names
var bucketRuns = []byte("runs")

// keyTimeLayout orders run keys chronologically when iterated byte-wise.
const keyTimeLayout = "20060102T150405.000000000Z"

// DB wraps a BoltDB instance with typed accessor methods.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the history database at the given path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRuns); err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRuns, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &DB{bolt: db}, nil
}

// Close closes the underlying BoltDB file.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Run history
// ─────────────────────────────────────────────────────────────────────────────

// PutRun appends a run record to the history.
func (db *DB) PutRun(rec v1.RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run %q: %w", rec.ID, err)
	}
	key := runKey(rec)
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(key, data)
	})
}

// GetRun retrieves a run record by ID or unique ID prefix.
// Returns nil, nil if not found.
func (db *DB) GetRun(id string) (*v1.RunRecord, error) {
	var found *v1.RunRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			var r v1.RunRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal run %q: %w", k, err)
			}
			if strings.HasPrefix(r.ID, id) {
				if found != nil && found.ID != r.ID {
					return fmt.Errorf("run id prefix %q is ambiguous", id)
				}
				found = &r
			}
			return nil
		})
	})
	return found, err
}

// ListRuns returns run records, newest first, limited to n (0 = all).
func (db *DB) ListRuns(n int) ([]v1.RunRecord, error) {
	var recs []v1.RunRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var r v1.RunRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal run %q: %w", k, err)
			}
			recs = append(recs, r)
			if n > 0 && len(recs) >= n {
				break
			}
		}
		return nil
	})
	return recs, err
}

// Prune removes all but the most recent keep records. Returns number removed.
func (db *DB) Prune(keep int) (int, error) {
	var removed int
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		total := b.Stats().KeyN
		excess := total - keep
		if excess <= 0 {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil && removed < excess; k, _ = c.First() {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// runKey builds a chronologically sortable key: <started>/<id>.
func runKey(rec v1.RunRecord) []byte {
	return []byte(rec.Started.UTC().Format(keyTimeLayout) + "/" + rec.ID)
}
