// Package bolt persists deployment records in a bolt database.
//
// The binding core keeps its registries in memory only; this store lets the
// CLI remember which projects have been realized between runs.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when getting a record that does not exist.
var ErrNotFound = errors.New("not found")

// A Record describes one realized resource.
type Record struct {
	// Kind is the resource kind: api / datasource / resolver / function.
	Kind string `json:"kind"`

	// Key is the resource key within the project.
	Key string `json:"key"`

	// ID is the provider-assigned identifier.
	ID string `json:"id"`

	// Deployment is the id of the deployment that created the resource.
	Deployment string `json:"deployment"`

	// CreatedAt is when the record was written.
	CreatedAt time.Time `json:"created_at"`
}

// A Store records realized resources per project.
type Store struct {
	db *bolt.DB
}

// DefaultFile returns the default database file.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get home dir")
	}
	return filepath.Join(home, ".graphbind", "state.db"), nil
}

// NewDeploymentID returns a unique id for one deployment run. Records written
// during the run should share it.
func NewDeploymentID() string {
	return ksuid.New().String()
}

// New creates and opens a database at the given file. If the file or
// directory does not exist, it is created.
func New(file string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, errors.Wrapf(err, "ensure dir exists: %s", filepath.Dir(file))
	}
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt db")
	}
	return &Store{db: db}, nil
}

// Close closes the store and releases all resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes a record for a project. If the record carries no creation time,
// the current time is set.
func (s *Store) Put(ctx context.Context, project string, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(project))
		if err != nil {
			return errors.Wrap(err, "ensure bucket")
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrap(err, "marshal record")
		}
		return bucket.Put(recordKey(rec.Kind, rec.Key), data)
	})
}

// Get returns the record for a resource. Returns ErrNotFound if the project
// or resource has no record.
func (s *Store) Get(ctx context.Context, project, kind, key string) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(project))
		if bucket == nil {
			return ErrNotFound
		}
		data := bucket.Get(recordKey(kind, key))
		if data == nil {
			return ErrNotFound
		}
		return errors.Wrap(json.Unmarshal(data, &rec), "unmarshal record")
	})
	return rec, err
}

// List returns all records for a project, in key order. An unknown project
// lists no records.
func (s *Store) List(ctx context.Context, project string) ([]Record, error) {
	var recs []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(project))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return errors.Wrapf(err, "unmarshal record %s", k)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func recordKey(kind, key string) []byte {
	return []byte(kind + "/" + key)
}
