package models

import (
	"strings"
	"testing"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleUser} {
		if !r.Valid() {
			t.Fatalf("expected role %q to be valid", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Admin"} {
		if r.Valid() {
			t.Fatalf("expected role %q to be invalid", r)
		}
	}
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range AllTaskStatuses {
		if !s.Valid() {
			t.Fatalf("expected status %q to be valid", s)
		}
	}
	for _, s := range []TaskStatus{"", "Done", "todo", "IN PROGRESS"} {
		if s.Valid() {
			t.Fatalf("expected status %q to be invalid", s)
		}
	}
}

func TestTaskStatusList(t *testing.T) {
	got := TaskStatusList()
	want := "Todo, In Progress, Completed"
	if got != want {
		t.Fatalf("status list mismatch: got %q want %q", got, want)
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("507f1f77bcf86cd799439011") {
		t.Fatal("expected 24-char hex id to be valid")
	}
	for _, id := range []string{"", "123", "507f1f77bcf86cd79943901z", strings.Repeat("a", 23)} {
		if IsValidID(id) {
			t.Fatalf("expected id %q to be invalid", id)
		}
	}
}
