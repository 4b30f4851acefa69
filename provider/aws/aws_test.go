package aws

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResourceName(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"Plain", []string{"notes", "notesDS"}, "notes-notesDS"},
		{"SpacesMapped", []string{"my api", "notesDS"}, "my_api-notesDS"},
		{"PathMapped", []string{"api", "src/list.main"}, "api-src_list_main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resourceName(64, tt.parts...); got != tt.want {
				t.Errorf("resourceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResourceName_truncate(t *testing.T) {
	got := resourceName(10, strings.Repeat("a", 20))
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestResourceName_stable(t *testing.T) {
	a := resourceName(roleNameMaxLen, "appsync", "apiid", "notesDS")
	b := resourceName(roleNameMaxLen, "appsync", "apiid", "notesDS")
	if a != b {
		t.Errorf("resourceName() not stable: %q != %q", a, b)
	}
}

func TestAllowPolicy(t *testing.T) {
	doc, err := allowPolicy([]string{"dynamodb:Query"}, []string{"*"})
	if err != nil {
		t.Fatalf("allowPolicy() error = %v", err)
	}
	var parsed policyDocument
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("unmarshal policy: %v", err)
	}
	if parsed.Version != policyVersion {
		t.Errorf("Version = %q, want %q", parsed.Version, policyVersion)
	}
	if len(parsed.Statement) != 1 || parsed.Statement[0].Effect != "Allow" {
		t.Errorf("unexpected statement: %+v", parsed.Statement)
	}
}

func TestAssumeRolePolicy(t *testing.T) {
	doc, err := assumeRolePolicy("appsync.amazonaws.com")
	if err != nil {
		t.Fatalf("assumeRolePolicy() error = %v", err)
	}
	var parsed policyDocument
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("unmarshal policy: %v", err)
	}
	svcs := parsed.Statement[0].Principal["Service"]
	if len(svcs) != 1 || svcs[0] != "appsync.amazonaws.com" {
		t.Errorf("Principal = %+v, want appsync.amazonaws.com", parsed.Statement[0].Principal)
	}
}

func TestHandlerName(t *testing.T) {
	if got := handlerName("src/notes.main"); got != "notes.main" {
		t.Errorf("handlerName() = %q, want notes.main", got)
	}
	if got := handlerName("notes.main"); got != "notes.main" {
		t.Errorf("handlerName() = %q, want notes.main", got)
	}
}

func TestValidARN(t *testing.T) {
	if err := check.Var("arn:aws:lambda:us-east-1:123456789012:function:fn", "arn"); err != nil {
		t.Errorf("valid arn rejected: %v", err)
	}
	if err := check.Var("not-an-arn", "arn"); err == nil {
		t.Error("invalid arn accepted")
	}
}
