package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the session as one JSON document on disk. Writes go
// through a temp file and rename so a crash mid-write leaves either the old
// or the new record, never a torn one. Suited to single-host deployments
// that have no Redis nearby.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileRecord struct {
	Token          string    `json:"token,omitempty"`
	User           *Profile  `json:"user,omitempty"`
	Companies      []Company `json:"companies,omitempty"`
	Roles          []string  `json:"roles,omitempty"`
	Permissions    []string  `json:"permissions,omitempty"`
	AdminCompanyID int64     `json:"adminCompanyId,omitempty"`
	StorageVersion int       `json:"storageVersion"`
}

// Load reads and decodes the current session. A missing file or a record
// that fails to parse yields the absent session.
func (s *FileStore) Load(_ context.Context) (*Session, error) {
	rec, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if rec == nil || rec.Token == "" {
		return nil, nil
	}

	sess := &Session{
		Token:          rec.Token,
		GlobalRoles:    rec.Roles,
		Companies:      rec.Companies,
		Permissions:    rec.Permissions,
		AdminCompanyID: rec.AdminCompanyID,
		SchemaVersion:  rec.StorageVersion,
	}
	if rec.User != nil {
		sess.User = *rec.User
	}
	return sess, nil
}

// Save persists all session fields, preserving the stored version tag.
func (s *FileStore) Save(_ context.Context, sess *Session) error {
	version := sess.SchemaVersion
	if prev, err := s.read(); err == nil && prev != nil && version == 0 {
		version = prev.StorageVersion
	}

	user := sess.User
	return s.write(&fileRecord{
		Token:          sess.Token,
		User:           &user,
		Companies:      sess.Companies,
		Roles:          sess.GlobalRoles,
		Permissions:    sess.Permissions,
		AdminCompanyID: sess.AdminCompanyID,
		StorageVersion: version,
	})
}

// Clear drops the session data fields, keeping only the version tag. Clearing
// a missing or already-cleared file leaves the same state, so the operation
// is idempotent.
func (s *FileStore) Clear(_ context.Context) error {
	rec, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	version := 0
	if rec != nil {
		version = rec.StorageVersion
	}
	return s.write(&fileRecord{StorageVersion: version})
}

// EnsureSchema wipes the record and writes the new tag when the stored tag
// differs from currentVersion. A missing or unreadable file counts as a
// mismatch.
func (s *FileStore) EnsureSchema(_ context.Context, currentVersion int) (bool, error) {
	rec, err := s.read()
	if err == nil && rec != nil && rec.StorageVersion == currentVersion {
		return false, nil
	}
	if err := s.write(&fileRecord{StorageVersion: currentVersion}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) read() (*fileRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt document: treated as absent by Load, mismatch by EnsureSchema.
		return nil, nil
	}
	return &rec, nil
}

func (s *FileStore) write(rec *fileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
