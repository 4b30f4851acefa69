package api

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Query getX", "Query getX"},
		{"Query   getX", "Query getX"},
		{"  Query\tgetX ", "Query getX"},
		{"Query\n getX", "Query getX"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Idempotent.
		if got := normalizeKey(normalizeKey(tt.in)); got != tt.want {
			t.Errorf("normalizeKey(normalizeKey(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseResolverKey(t *testing.T) {
	typeName, fieldName, err := parseResolverKey("Query listNotes")
	if err != nil {
		t.Fatalf("parseResolverKey() error = %v", err)
	}
	if typeName != "Query" || fieldName != "listNotes" {
		t.Errorf("parseResolverKey() = (%q, %q), want (Query, listNotes)", typeName, fieldName)
	}
}

func TestParseResolverKey_invalid(t *testing.T) {
	for _, key := range []string{"Query", "Query a b", ""} {
		t.Run(key, func(t *testing.T) {
			_, _, err := parseResolverKey(key)
			if _, ok := err.(InvalidResolverKeyError); !ok {
				t.Errorf("parseResolverKey(%q) error = %v, want InvalidResolverKeyError", key, err)
			}
		})
	}
}

func TestImplicitDataSourceKey(t *testing.T) {
	got := implicitDataSourceKey("Query", "listNotes")
	want := "LambdaDS_Query_listNotes"
	if got != want {
		t.Errorf("implicitDataSourceKey() = %q, want %q", got, want)
	}
	// Stable across invocations.
	if again := implicitDataSourceKey("Query", "listNotes"); again != got {
		t.Errorf("implicitDataSourceKey() not stable: %q != %q", again, got)
	}
}
