package policy

import (
	"strings"

	"github.com/portalauth/portalauth/session"
)

// Config names the recognized roles and the home paths they resolve to.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// SuperUserRole is the global role granting the super-user console
	// (e.g. "su").
	SuperUserRole string
	// WriterRole is the global content-writer role (e.g. "writer").
	WriterRole string
	// DeveloperRoles optionally restricts developer-level access to specific
	// global role names. Empty keeps the historical behavior: any global role
	// at all counts as developer-level.
	DeveloperRoles []string

	// SuperUserHome is the super-user dashboard path.
	SuperUserHome string
	// WriterHome is the generic home path for the writer role.
	WriterHome string
}

// Policy evaluates authorization queries over a [session.Session] snapshot.
// All methods are pure, perform no I/O, and are safe for concurrent use.
type Policy struct {
	cfg          Config
	developerSet map[string]struct{}
}

// New creates an immutable [Policy] from cfg.
func New(cfg Config) *Policy {
	p := &Policy{cfg: cfg}
	if len(cfg.DeveloperRoles) > 0 {
		p.developerSet = make(map[string]struct{}, len(cfg.DeveloperRoles))
		for _, r := range cfg.DeveloperRoles {
			p.developerSet[r] = struct{}{}
		}
	}
	return p
}

// HasAnyRole reports whether the session's combined role set — global roles
// plus all company-scoped roles, flattened — intersects requiredRoles.
// requiredRoles is a comma-separated list; entries are trimmed before
// comparison, which is exact-string and case-sensitive. Semantics are any-of.
func (p *Policy) HasAnyRole(s *session.Session, requiredRoles string) bool {
	if s == nil {
		return false
	}

	for _, required := range strings.Split(requiredRoles, ",") {
		required = strings.TrimSpace(required)
		if required == "" {
			continue
		}
		for _, role := range s.GlobalRoles {
			if role == required {
				return true
			}
		}
		for _, company := range s.Companies {
			for _, role := range company.Roles {
				if role == required {
					return true
				}
			}
		}
	}
	return false
}

// IsDeveloper reports developer-level access. Without a configured
// DeveloperRoles list, any global role at all qualifies; company-scoped roles
// never do.
func (p *Policy) IsDeveloper(s *session.Session) bool {
	if s == nil {
		return false
	}
	if p.developerSet == nil {
		return len(s.GlobalRoles) > 0
	}
	for _, role := range s.GlobalRoles {
		if _, ok := p.developerSet[role]; ok {
			return true
		}
	}
	return false
}

// HasBusinessRoleFor reports whether the session holds at least one role
// scoped to companyID. The company id comparison is exact numeric equality.
func (p *Policy) HasBusinessRoleFor(s *session.Session, companyID int64) bool {
	return len(s.RolesForCompany(companyID)) > 0
}

// RedirectHomeFor returns the canonical home destination for an authenticated
// session: the super-user dashboard when the global roles contain the
// super-user role, the writer home when they contain the writer role, and ""
// when no forced redirect applies. Token presence is checked eagerly; a
// tokenless or absent session always yields "".
func (p *Policy) RedirectHomeFor(s *session.Session) string {
	if !s.Authenticated() {
		return ""
	}
	for _, role := range s.GlobalRoles {
		if role == p.cfg.SuperUserRole {
			return p.cfg.SuperUserHome
		}
	}
	for _, role := range s.GlobalRoles {
		if role == p.cfg.WriterRole {
			return p.cfg.WriterHome
		}
	}
	return ""
}
