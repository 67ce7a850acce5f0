package searchpolicy

import (
	"net/http/httptest"
	"testing"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
)

func TestCanCreateSearch(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{"owner", true},
		{"member", true},
		{"viewer", false},
		{"", false},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("POST", "/dashboard/searches", nil)
		r = auth.WithTestUser(r, &auth.SessionUser{ID: "u1", Role: tc.role, OrgID: "org_1"})
		if got := CanCreateSearch(r); got != tc.want {
			t.Errorf("CanCreateSearch(role=%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanCreateSearchAnonymous(t *testing.T) {
	r := httptest.NewRequest("POST", "/dashboard/searches", nil)
	if CanCreateSearch(r) {
		t.Error("anonymous request should not be allowed to create searches")
	}
}

func TestCanDeleteSearch(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{"owner", true},
		{"Owner", true},
		{"member", false},
		{"viewer", false},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("POST", "/dashboard/searches/1/delete", nil)
		r = auth.WithTestUser(r, &auth.SessionUser{ID: "u1", Role: tc.role, OrgID: "org_1"})
		if got := CanDeleteSearch(r); got != tc.want {
			t.Errorf("CanDeleteSearch(role=%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
