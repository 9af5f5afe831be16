package session

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Persisted field names. These are the on-storage keys shared by every Store
// implementation; EnsureSchema wipes them as a unit on a version mismatch.
const (
	FieldToken          = "token"
	FieldUser           = "user"
	FieldCompanies      = "companies"
	FieldRoles          = "roles"
	FieldPermissions    = "permissions"
	FieldAdminCompanyID = "adminCompanyId"
	FieldStorageVersion = "storageVersion"
)

var errNoToken = errors.New("no token field")

// dataFields are the fields cleared by Store.Clear. The storageVersion tag is
// owned by EnsureSchema and survives a Clear.
var dataFields = []string{
	FieldToken,
	FieldUser,
	FieldCompanies,
	FieldRoles,
	FieldPermissions,
	FieldAdminCompanyID,
}

// encodeFields serializes a session into the persisted field map. The token
// and adminCompanyId are stored raw; structured fields are JSON documents.
func encodeFields(s *Session) (map[string]string, error) {
	user, err := json.Marshal(s.User)
	if err != nil {
		return nil, err
	}
	companies, err := json.Marshal(emptyIfNilCompanies(s.Companies))
	if err != nil {
		return nil, err
	}
	roles, err := json.Marshal(emptyIfNil(s.GlobalRoles))
	if err != nil {
		return nil, err
	}
	perms, err := json.Marshal(emptyIfNil(s.Permissions))
	if err != nil {
		return nil, err
	}

	return map[string]string{
		FieldToken:          s.Token,
		FieldUser:           string(user),
		FieldCompanies:      string(companies),
		FieldRoles:          string(roles),
		FieldPermissions:    string(perms),
		FieldAdminCompanyID: strconv.FormatInt(s.AdminCompanyID, 10),
	}, nil
}

// decodeFields parses a persisted field map back into a session. A missing or
// empty token means the viewer is not authenticated and yields errNoToken;
// any malformed structured field is an error. Callers (the stores) collapse
// both cases into the absent session.
func decodeFields(fields map[string]string, version int) (*Session, error) {
	token := fields[FieldToken]
	if token == "" {
		return nil, errNoToken
	}

	s := &Session{
		Token:         token,
		SchemaVersion: version,
	}

	if raw := fields[FieldUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return nil, err
		}
	}
	if raw := fields[FieldCompanies]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Companies); err != nil {
			return nil, err
		}
	}
	if raw := fields[FieldRoles]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.GlobalRoles); err != nil {
			return nil, err
		}
	}
	if raw := fields[FieldPermissions]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Permissions); err != nil {
			return nil, err
		}
	}
	if raw := fields[FieldAdminCompanyID]; raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		s.AdminCompanyID = id
	}

	return s, nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emptyIfNilCompanies(in []Company) []Company {
	if in == nil {
		return []Company{}
	}
	return in
}
