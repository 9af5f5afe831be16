package session

// CurrentSchemaVersion tags the persisted session layout. Bump it whenever a
// deployment changes the stored field shapes; EnsureSchema wipes any record
// carrying an older tag before guards are allowed to read it.
const CurrentSchemaVersion = 3

// Profile is the viewer's identity as returned by the upstream login and
// profile endpoints.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Picture  string `json:"picture"`
}

// Company is one company association granted to the viewer, with the role
// and permission names scoped to that company.
type Company struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// Session defines the client-held authentication record.
//
// Session instances are intended to be built by a login response or decoded
// from a [Store] and then treated as immutable; only a Store mutates the
// persisted record, and every Load returns a fresh deep copy.
type Session struct {
	Token          string
	User           Profile
	GlobalRoles    []string
	Companies      []Company
	Permissions    []string
	AdminCompanyID int64
	SchemaVersion  int
}

// Authenticated reports whether the session carries a bearer token. Token
// presence is the sole authentication signal; no other field is consulted.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// RolesForCompany returns the role names granted for one company identifier,
// or nil when the viewer has no association with that company. The lookup is
// exact numeric equality on the company id.
func (s *Session) RolesForCompany(companyID int64) []string {
	if s == nil {
		return nil
	}
	for i := range s.Companies {
		if s.Companies[i].ID == companyID {
			return s.Companies[i].Roles
		}
	}
	return nil
}

// CompanyRoles flattens the company associations into an id → roles map.
func (s *Session) CompanyRoles() map[int64][]string {
	if s == nil || len(s.Companies) == 0 {
		return nil
	}
	out := make(map[int64][]string, len(s.Companies))
	for i := range s.Companies {
		out[s.Companies[i].ID] = s.Companies[i].Roles
	}
	return out
}

// Clone returns a deep copy. Stores hand out clones so that callers can never
// mutate the persisted record through a returned snapshot.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.GlobalRoles = cloneStrings(s.GlobalRoles)
	out.Permissions = cloneStrings(s.Permissions)
	if s.Companies != nil {
		out.Companies = make([]Company, len(s.Companies))
		for i := range s.Companies {
			out.Companies[i] = s.Companies[i]
			out.Companies[i].Roles = cloneStrings(s.Companies[i].Roles)
			out.Companies[i].Permissions = cloneStrings(s.Companies[i].Permissions)
		}
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
