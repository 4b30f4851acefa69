package bolt_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/storage/bolt"
)

func newStore(t *testing.T) *bolt.Store {
	t.Helper()
	dir, err := ioutil.TempDir("", "bolt")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	s, err := bolt.New(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_roundtrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := bolt.Record{
		Kind:       "datasource",
		Key:        "notesDS",
		ID:         "datasource:notesDS",
		Deployment: bolt.NewDeploymentID(),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	if err := s.Put(ctx, "notes", rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "notes", "datasource", "notesDS")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != rec {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
}

func TestStore_getMissing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "notes", "datasource", "missing")
	if errors.Cause(err) != bolt.ErrNotFound {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_list(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "notes", bolt.Record{Kind: "api", Key: "notes", ID: "api:notes"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "notes", bolt.Record{Kind: "datasource", Key: "notesDS", ID: "datasource:notesDS"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "other", bolt.Record{Kind: "api", Key: "other", ID: "api:other"}); err != nil {
		t.Fatal(err)
	}

	recs, err := s.List(ctx, "notes")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	empty, err := s.List(ctx, "unknown")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d records for unknown project, want 0", len(empty))
	}
}
