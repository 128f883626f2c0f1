package rbac_test

import (
	"testing"

	"github.com/prepdeck/prepdeck/internal/rbac"
)

func TestChecker_RolePolicy(t *testing.T) {
	c := rbac.NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", "answers:submit", true},
		{"student", "question:create", false},
		{"student", "performance:view-own", true},
		{"student", "performance:view-all", false},
		{"teacher", "question:create", true},
		{"teacher", "users:bulk_upsert", false},
		{"admin", "question:create", true},
		{"admin", "users:bulk_upsert", true},
		{"", "tags:view", false},
		{"ghost-role", "tags:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestChecker_WildcardPrefix(t *testing.T) {
	c := rbac.NewChecker(map[string][]string{"ops": {"reports:*"}})
	if !c.Has("ops", "reports:view-all") {
		t.Error("prefix wildcard should match")
	}
	if c.Has("ops", "question:create") {
		t.Error("prefix wildcard must not match other namespaces")
	}
}

func TestChecker_Any(t *testing.T) {
	c := rbac.NewChecker(nil)
	if !c.Any("student", "performance:view-own", "performance:view-all") {
		t.Error("student should pass Any with view-own")
	}
	if c.Any("student", "users:list", "question:delete") {
		t.Error("student must fail Any with teacher-only perms")
	}
}
