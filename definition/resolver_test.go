package definition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolver_ResolveTarget(t *testing.T) {
	registered := []string{"notesDS", "usersDS"}

	tests := []struct {
		name string
		def  Resolver
		want Target
	}{
		{
			"ShorthandRegisteredKey",
			Resolver{Shorthand: "notesDS"},
			Target{DataSourceKey: "notesDS"},
		},
		{
			"ShorthandHandlerPath",
			Resolver{Shorthand: "src/list.main"},
			Target{Function: &Function{Handler: "src/list.main", Source: "src"}},
		},
		{
			"DataSourceField",
			Resolver{DataSource: "usersDS"},
			Target{DataSourceKey: "usersDS"},
		},
		{
			"InlineFunction",
			Resolver{Function: &Function{Handler: "src/create.main"}},
			Target{Function: &Function{Handler: "src/create.main"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.def.ResolveTarget(registered)
			if err != nil {
				t.Fatalf("ResolveTarget() error = %v", err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("ResolveTarget() (-got, +want)\n%s", diff)
			}
		})
	}
}

func TestResolver_ResolveTarget_registeredKeyBeforePathCheck(t *testing.T) {
	// A registered key that also looks like a handler path binds to the data
	// source. The registry check runs first.
	registered := []string{"src/list.main"}
	got, err := Resolver{Shorthand: "src/list.main"}.ResolveTarget(registered)
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	want := Target{DataSourceKey: "src/list.main"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("ResolveTarget() (-got, +want)\n%s", diff)
	}
}

func TestResolver_ResolveTarget_unknownKey(t *testing.T) {
	// A plain string without a path separator that does not match a
	// registered key is a bad reference, not a handler path.
	_, err := Resolver{Shorthand: "noteDS"}.ResolveTarget([]string{"notesDS"})
	uerr, ok := err.(UnknownDataSourceError)
	if !ok {
		t.Fatalf("ResolveTarget() error = %v, want UnknownDataSourceError", err)
	}
	if uerr.Key != "noteDS" {
		t.Errorf("Key = %q, want %q", uerr.Key, "noteDS")
	}
	if uerr.Suggestion != "notesDS" {
		t.Errorf("Suggestion = %q, want %q", uerr.Suggestion, "notesDS")
	}
}

func TestResolver_ResolveTarget_unknownDataSourceField(t *testing.T) {
	_, err := Resolver{DataSource: "missing"}.ResolveTarget([]string{"notesDS"})
	if _, ok := err.(UnknownDataSourceError); !ok {
		t.Fatalf("ResolveTarget() error = %v, want UnknownDataSourceError", err)
	}
}

func TestResolver_ResolveTarget_ambiguous(t *testing.T) {
	tests := []struct {
		name string
		def  Resolver
	}{
		{"ShorthandAndFunction", Resolver{Shorthand: "notesDS", Function: &Function{Handler: "src/a.main"}}},
		{"ShorthandAndDataSource", Resolver{Shorthand: "notesDS", DataSource: "notesDS"}},
		{"DataSourceAndFunction", Resolver{DataSource: "notesDS", Function: &Function{Handler: "src/a.main"}}},
		{"Empty", Resolver{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.ResolveTarget([]string{"notesDS"})
			if _, ok := err.(AmbiguousDefinitionError); !ok {
				t.Errorf("ResolveTarget() error = %v, want AmbiguousDefinitionError", err)
			}
		})
	}
}
