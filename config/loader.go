package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl2/gohcl"
	"github.com/hashicorp/hcl2/hcl"
	"github.com/hashicorp/hcl2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/crypto/ssh/terminal"
)

// FileName is the name of the main project file. A directory containing it
// is a project root.
const FileName = "graphbind.hcl"

// A Loader loads project declarations from .hcl files on disk.
//
// The zero value is ready to load files.
type Loader struct {
	parser *hclparse.Parser
}

// Root finds the root directory of a project. The returned string is the
// absolute path to the project on disk.
//
// The root is the closest directory, starting from dir and traversing
// upward, that contains a graphbind.hcl file. An error is returned if dir
// cannot be opened. An empty string is returned if no project was found.
func (l *Loader) Root(dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", errors.WithStack(err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WithStack(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, FileName)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// Load loads the project declaration from all .hcl files in dir. Files are
// merged; declaration order between files follows the sorted file names.
func (l *Loader) Load(dir string) (*Project, error) {
	if l.parser == nil {
		l.parser = hclparse.NewParser()
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.hcl"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no .hcl files in %s", dir)
	}
	sort.Strings(matches)

	files := make([]*hcl.File, 0, len(matches))
	var diags hcl.Diagnostics
	for _, name := range matches {
		f, d := l.parser.ParseHCLFile(name)
		diags = append(diags, d...)
		if f != nil {
			files = append(files, f)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	body := hcl.MergeFiles(files)

	ctx, diags := l.evalContext(body)
	if diags.HasErrors() {
		return nil, diags
	}

	var root Root
	if d := gohcl.DecodeBody(body, ctx, &root); d.HasErrors() {
		return nil, d
	}
	return root.project(dir)
}

// evalContext builds the evaluation context from the variable blocks.
// Variable values must be literals; they cannot reference other variables.
func (l *Loader) evalContext(body hcl.Body) (*hcl.EvalContext, hcl.Diagnostics) {
	var vars struct {
		Variables []VariableBlock `hcl:"variable,block"`
		Remain    hcl.Body        `hcl:",remain"`
	}
	if diags := gohcl.DecodeBody(body, nil, &vars); diags.HasErrors() {
		return nil, diags
	}
	if len(vars.Variables) == 0 {
		return nil, nil
	}
	vals := make(map[string]cty.Value, len(vars.Variables))
	for _, v := range vars.Variables {
		vals[v.Name] = v.Value
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vals),
		},
	}, nil
}

// WriteDiagnostics writes diagnostics as a human readable string to w. It
// should only be used for diagnostics that originate from files loaded by
// Loader.
//
// If a TTY is attached, the output is colorized and wraps at the terminal
// width. Otherwise, wrap occurs at 78 characters without ANSI escapes.
func (l *Loader) WriteDiagnostics(w io.Writer, diags hcl.Diagnostics) {
	var files map[string]*hcl.File
	if l.parser != nil {
		files = l.parser.Files()
	}
	cols, _, err := terminal.GetSize(0)
	if err != nil {
		cols = 78
	}
	color := terminal.IsTerminal(0)
	wr := hcl.NewDiagnosticTextWriter(w, files, uint(cols), color)
	if err := wr.WriteDiagnostics(diags); err != nil {
		fmt.Fprintln(w, err)
	}
}
