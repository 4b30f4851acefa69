// Package template builds mapping template artifacts from declarative
// template specs.
package template

import (
	"fmt"
	"io/ioutil"

	"github.com/graphbind/graphbind/definition"
)

// An Artifact is a resolved mapping template.
type Artifact struct {
	// Content is the template text.
	Content string
}

// An InvalidSpecError is returned when a template spec does not set exactly
// one of file and inline content.
type InvalidSpecError struct {
	// Reason describes what is wrong with the spec.
	Reason string
}

// Error implements error.
func (e InvalidSpecError) Error() string {
	return "invalid template spec: " + e.Reason
}

// A NotFoundError is returned when a file-backed template cannot be read.
type NotFoundError struct {
	// Path is the template file path.
	Path string

	// Err is the underlying read error.
	Err error
}

// Error implements error.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

// Build resolves a template spec into an artifact.
//
// A nil spec builds to nil without error. A file-backed spec is read at build
// time and returns a NotFoundError if the file cannot be read. Setting both
// or neither of file and inline content is an InvalidSpecError.
func Build(spec *definition.Template) (*Artifact, error) {
	if spec == nil {
		return nil, nil
	}
	if spec.File != "" && spec.Inline != "" {
		return nil, InvalidSpecError{Reason: "both file and inline content set"}
	}
	if spec.File == "" && spec.Inline == "" {
		return nil, InvalidSpecError{Reason: "neither file nor inline content set"}
	}
	if spec.File != "" {
		b, err := ioutil.ReadFile(spec.File)
		if err != nil {
			return nil, NotFoundError{Path: spec.File, Err: err}
		}
		return &Artifact{Content: string(b)}, nil
	}
	return &Artifact{Content: spec.Inline}, nil
}
