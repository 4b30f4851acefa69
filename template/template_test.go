package template_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/template"
)

func TestBuild_nil(t *testing.T) {
	got, err := template.Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}
	if got != nil {
		t.Errorf("Build(nil) = %+v, want nil", got)
	}
}

func TestBuild_inline(t *testing.T) {
	got, err := template.Build(&definition.Template{Inline: "$ctx.result"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got.Content != "$ctx.result" {
		t.Errorf("Content = %q, want $ctx.result", got.Content)
	}
}

func TestBuild_file(t *testing.T) {
	dir, err := ioutil.TempDir("", "template")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "req.vtl")
	if err := ioutil.WriteFile(file, []byte("$ctx.args"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := template.Build(&definition.Template{File: file})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got.Content != "$ctx.args" {
		t.Errorf("Content = %q, want $ctx.args", got.Content)
	}
}

func TestBuild_fileNotFound(t *testing.T) {
	_, err := template.Build(&definition.Template{File: "nonexisting.vtl"})
	if _, ok := err.(template.NotFoundError); !ok {
		t.Errorf("Build() error = %v, want NotFoundError", err)
	}
}

func TestBuild_invalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec *definition.Template
	}{
		{"Both", &definition.Template{File: "req.vtl", Inline: "$ctx.args"}},
		{"Neither", &definition.Template{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := template.Build(tt.spec)
			if _, ok := err.(template.InvalidSpecError); !ok {
				t.Errorf("Build() error = %v, want InvalidSpecError", err)
			}
		})
	}
}
