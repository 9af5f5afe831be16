package policy

import (
	"testing"

	"github.com/portalauth/portalauth/session"
)

func testPolicy() *Policy {
	return New(Config{
		SuperUserRole: "su",
		WriterRole:    "writer",
		SuperUserHome: "/su/dashboard",
		WriterHome:    "/",
	})
}

func TestHasAnyRole(t *testing.T) {
	p := testPolicy()

	sess := &session.Session{
		Token:       "tok",
		GlobalRoles: []string{"writer"},
		Companies: []session.Company{
			{ID: 5, Roles: []string{"ADMIN_EMPRESA"}},
		},
	}

	cases := []struct {
		name     string
		s        *session.Session
		required string
		want     bool
	}{
		{"any-of match after trimming", sess, "su, writer", true},
		{"company scoped role counts in flattened set", sess, "ADMIN_EMPRESA", true},
		{"no intersection", sess, "su, ops", false},
		{"case sensitive", sess, "Writer", false},
		{"empty list", sess, "", false},
		{"absent session", nil, "writer", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.HasAnyRole(tc.s, tc.required); got != tc.want {
				t.Fatalf("HasAnyRole(%q) = %v, want %v", tc.required, got, tc.want)
			}
		})
	}
}

func TestIsDeveloper(t *testing.T) {
	p := testPolicy()

	if p.IsDeveloper(nil) {
		t.Fatal("absent session must not be developer")
	}
	if p.IsDeveloper(&session.Session{Token: "tok"}) {
		t.Fatal("empty global roles must not be developer")
	}
	if p.IsDeveloper(&session.Session{
		Token:     "tok",
		Companies: []session.Company{{ID: 5, Roles: []string{"ADMIN_EMPRESA"}}},
	}) {
		t.Fatal("company-scoped roles must never imply developer access")
	}
	if !p.IsDeveloper(&session.Session{Token: "tok", GlobalRoles: []string{"writer"}}) {
		t.Fatal("any global role counts as developer by default")
	}
}

func TestIsDeveloperRestrictedList(t *testing.T) {
	p := New(Config{
		SuperUserRole:  "su",
		WriterRole:     "writer",
		DeveloperRoles: []string{"su"},
		SuperUserHome:  "/su/dashboard",
		WriterHome:     "/",
	})

	if p.IsDeveloper(&session.Session{Token: "tok", GlobalRoles: []string{"writer"}}) {
		t.Fatal("restricted list must exclude unlisted global roles")
	}
	if !p.IsDeveloper(&session.Session{Token: "tok", GlobalRoles: []string{"su"}}) {
		t.Fatal("restricted list must include listed roles")
	}
}

func TestHasBusinessRoleFor(t *testing.T) {
	p := testPolicy()
	sess := &session.Session{
		Token:     "tok",
		Companies: []session.Company{{ID: 5, Roles: []string{"ADMIN_EMPRESA"}}},
	}

	if !p.HasBusinessRoleFor(sess, 5) {
		t.Fatal("expected grant for company 5")
	}
	if p.HasBusinessRoleFor(sess, 6) {
		t.Fatal("company 6 must be denied")
	}
	if p.HasBusinessRoleFor(nil, 5) {
		t.Fatal("absent session must be denied")
	}
	if p.HasBusinessRoleFor(&session.Session{
		Token:     "tok",
		Companies: []session.Company{{ID: 5, Roles: []string{}}},
	}, 5) {
		t.Fatal("empty role set for the company must be denied")
	}
}

func TestRedirectHomeFor(t *testing.T) {
	p := testPolicy()

	cases := []struct {
		name string
		s    *session.Session
		want string
	}{
		{"absent", nil, ""},
		{"no token", &session.Session{GlobalRoles: []string{"su"}}, ""},
		{"super user", &session.Session{Token: "tok", GlobalRoles: []string{"su"}}, "/su/dashboard"},
		{"writer", &session.Session{Token: "tok", GlobalRoles: []string{"writer"}}, "/"},
		{"super user wins over writer", &session.Session{Token: "tok", GlobalRoles: []string{"writer", "su"}}, "/su/dashboard"},
		{"no recognized role", &session.Session{Token: "tok", GlobalRoles: []string{"ops"}}, ""},
		{"business only", &session.Session{Token: "tok", Companies: []session.Company{{ID: 5, Roles: []string{"ADMIN_EMPRESA"}}}}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.RedirectHomeFor(tc.s); got != tc.want {
				t.Fatalf("RedirectHomeFor = %q, want %q", got, tc.want)
			}
		})
	}
}
