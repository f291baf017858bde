package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// First-run credentials. The admin is expected to change the password from
// the settings screen.
const (
	DefaultUser     = "admin"
	defaultPassword = "admin123"
)

var (
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrUnknownUser      = errors.New("unknown user")
)

// Users is the credential store backing the edit gate. Passwords are kept
// as SHA-256 digests in an encrypted JSON file.
type Users struct {
	manager *Manager
	path    string
	hashes  map[string]string
}

type userFile struct {
	Users map[string]string `json:"users"`
}

// LoadUsers reads the user file, seeding it with the default admin account
// when it does not exist yet.
func LoadUsers(manager *Manager, path string) (*Users, error) {
	u := &Users{manager: manager, path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		u.hashes = map[string]string{DefaultUser: hashPassword(defaultPassword)}
		if err := u.save(); err != nil {
			return nil, fmt.Errorf("seeding user file: %w", err)
		}
		return u, nil
	}

	var f userFile
	if err := manager.LoadJSON(path, &f); err != nil {
		return nil, err
	}
	if f.Users == nil {
		f.Users = map[string]string{}
	}
	u.hashes = f.Users
	return u, nil
}

// Authenticate reports whether the credentials match a known user.
func (u *Users) Authenticate(name, password string) bool {
	want, ok := u.hashes[name]
	if !ok {
		return false
	}
	got := hashPassword(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// SetPassword replaces a user's password after verifying the old one. The
// new password must be non-empty and confirmed.
func (u *Users) SetPassword(name, oldPassword, newPassword, confirm string) error {
	if _, ok := u.hashes[name]; !ok {
		return ErrUnknownUser
	}
	if !u.Authenticate(name, oldPassword) {
		return ErrBadCredentials
	}
	if newPassword == "" {
		return ErrEmptyPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	u.hashes[name] = hashPassword(newPassword)
	return u.save()
}

func (u *Users) save() error {
	return u.manager.SaveJSON(u.path, userFile{Users: u.hashes})
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
