package schema_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphbind/graphbind/schema"
)

func TestLoad_empty(t *testing.T) {
	got, err := schema.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestLoad_merge(t *testing.T) {
	dir, err := ioutil.TempDir("", "schema")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	queries := filepath.Join(dir, "queries.graphql")
	types := filepath.Join(dir, "types.graphql")
	if err := ioutil.WriteFile(queries, []byte("type Query { notes: [Note] }"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(types, []byte("type Note { id: ID! }"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := schema.Load(context.Background(), schema.Files(queries, types)...)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := "type Query { notes: [Note] }\ntype Note { id: ID! }"
	if doc.Source != want {
		t.Errorf("Source = %q, want %q", doc.Source, want)
	}
	if len(doc.AST.Definitions) != 2 {
		t.Errorf("got %d definitions, want 2", len(doc.AST.Definitions))
	}
}

func TestLoad_literalAndFileOrder(t *testing.T) {
	dir, err := ioutil.TempDir("", "schema")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "types.graphql")
	if err := ioutil.WriteFile(file, []byte("type Note { id: ID! }"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := schema.Load(context.Background(),
		schema.Literal("base", "type Query { notes: [Note] }"),
		schema.Files(file)[0],
	)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Sources merge in declaration order regardless of read order.
	want := "type Query { notes: [Note] }\ntype Note { id: ID! }"
	if doc.Source != want {
		t.Errorf("Source = %q, want %q", doc.Source, want)
	}
}

func TestLoad_parseError(t *testing.T) {
	_, err := schema.Load(context.Background(), schema.Literal("bad", "type Query {"))
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := schema.Load(context.Background(), schema.Files("nonexisting.graphql")...)
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}
