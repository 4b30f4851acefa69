// Package schema loads and merges GraphQL schema documents.
package schema

import (
	"context"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"golang.org/x/sync/errgroup"
)

// A Source provides one schema document. Either Path points to a file on
// disk, or Content holds the document directly.
type Source struct {
	// Name identifies the source in error messages. For file sources this is
	// the path.
	Name string

	// Path is a file to read the document from.
	Path string

	// Content is the literal document.
	Content string
}

// Files returns file-backed sources for the given paths.
func Files(paths ...string) []Source {
	srcs := make([]Source, len(paths))
	for i, p := range paths {
		srcs[i] = Source{Name: p, Path: p}
	}
	return srcs
}

// Literal returns a source holding the given document.
func Literal(name, content string) Source {
	return Source{Name: name, Content: content}
}

// A Document is a merged schema.
type Document struct {
	// Source is the merged schema text, sources joined in declaration order.
	Source string

	// AST is the parsed document.
	AST *ast.SchemaDocument
}

// Load reads, parses and merges the given sources into a single document.
//
// File sources are read concurrently but merged in declaration order, so the
// result does not depend on read completion order. With no sources, nil is
// returned without error.
func Load(ctx context.Context, sources ...Source) (*Document, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	contents := make([]string, len(sources))
	g, _ := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		if src.Path == "" {
			contents[i] = src.Content
			continue
		}
		g.Go(func() error {
			b, err := ioutil.ReadFile(src.Path)
			if err != nil {
				return errors.Wrapf(err, "read schema %s", src.Path)
			}
			contents[i] = string(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inputs := make([]*ast.Source, len(sources))
	for i, src := range sources {
		inputs[i] = &ast.Source{Name: src.Name, Input: contents[i]}
	}
	doc, err := parser.ParseSchemas(inputs...)
	if err != nil {
		return nil, errors.Wrap(err, "parse schema")
	}

	return &Document{
		Source: strings.Join(contents, "\n"),
		AST:    doc,
	}, nil
}
