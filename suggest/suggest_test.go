package suggest_test

import (
	"testing"

	"github.com/graphbind/graphbind/suggest"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name       string
		want       string
		registered []string
		suggestion string
	}{
		{"CloseMatch", "noteDS", []string{"notesDS", "usersDS"}, "notesDS"},
		{"Exact", "notesDS", []string{"notesDS"}, "notesDS"},
		{"TooDifferent", "orders", []string{"notesDS"}, ""},
		{"Empty", "", []string{"notesDS"}, ""},
		{"NoCandidates", "notesDS", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggest.Key(tt.want, tt.registered); got != tt.suggestion {
				t.Errorf("Key(%q, %v) = %q, want %q", tt.want, tt.registered, got, tt.suggestion)
			}
		})
	}
}
