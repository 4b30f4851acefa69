package definition

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/graphbind/graphbind/suggest"
)

// A Resolver describes the binding of one GraphQL field to a data source.
//
// The binding may be declared three ways: Shorthand carries the single-string
// form (a registered data source key, or a handler path for an inline
// function), DataSource names a registered data source, and Function defines
// an inline function. Setting more than one is a conflict.
type Resolver struct {
	// Shorthand is the single-string form of the binding.
	Shorthand string

	// DataSource is the key of a registered data source to bind to.
	DataSource string

	// Function defines an inline function to create a data source from.
	Function *Function

	// RequestTemplate transforms the incoming field arguments.
	RequestTemplate *Template

	// ResponseTemplate transforms the data source result.
	ResponseTemplate *Template
}

// A Target is the classified binding of a resolver: either the key of an
// existing data source, or an inline function that an implicit data source
// must be created from. Exactly one field is set.
type Target struct {
	// DataSourceKey is the key of the existing data source to bind to.
	DataSourceKey string

	// Function is the inline function to back the resolver with.
	Function *Function
}

// An UnknownDataSourceError is returned when a resolver references a data
// source key that has not been registered.
type UnknownDataSourceError struct {
	// Key is the unresolved key.
	Key string

	// Suggestion is a registered key that closely matches Key, if any.
	Suggestion string
}

// Error implements error.
func (e UnknownDataSourceError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown data source %q, did you mean %q?", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown data source %q", e.Key)
}

// ResolveTarget classifies the resolver definition against the currently
// registered data source keys.
//
// A shorthand string is first matched against the registered keys. On miss, a
// string without a path separator is judged to be a bad reference rather than
// a handler path and returns an UnknownDataSourceError. This check order is
// significant: a key that also looks like a handler path binds to the data
// source.
func (r Resolver) ResolveTarget(registered []string) (Target, error) {
	set := 0
	if r.Shorthand != "" {
		set++
	}
	if r.DataSource != "" {
		set++
	}
	if r.Function != nil {
		set++
	}
	if set > 1 {
		return Target{}, AmbiguousDefinitionError{Reason: "resolver declares more than one of shorthand, data source and function"}
	}

	switch {
	case r.Shorthand != "":
		for _, key := range registered {
			if key == r.Shorthand {
				return Target{DataSourceKey: key}, nil
			}
		}
		if !strings.ContainsRune(r.Shorthand, filepath.Separator) && !strings.ContainsRune(r.Shorthand, '/') {
			return Target{}, UnknownDataSourceError{
				Key:        r.Shorthand,
				Suggestion: suggest.Key(r.Shorthand, registered),
			}
		}
		return Target{Function: &Function{
			Handler: r.Shorthand,
			Source:  filepath.Dir(r.Shorthand),
		}}, nil
	case r.DataSource != "":
		for _, key := range registered {
			if key == r.DataSource {
				return Target{DataSourceKey: key}, nil
			}
		}
		return Target{}, UnknownDataSourceError{
			Key:        r.DataSource,
			Suggestion: suggest.Key(r.DataSource, registered),
		}
	case r.Function != nil:
		return Target{Function: r.Function}, nil
	default:
		return Target{}, AmbiguousDefinitionError{Reason: "resolver declares no binding"}
	}
}
