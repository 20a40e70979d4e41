package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
// It never says which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredentials holds the single configured admin login
type AdminCredentials struct {
	username []byte
	password []byte
}

// NewAdminCredentials creates the admin credential checker
func NewAdminCredentials(username, password string) *AdminCredentials {
	return &AdminCredentials{
		username: []byte(username),
		password: []byte(password),
	}
}

// Authenticate compares both fields byte for byte in constant time
func (c *AdminCredentials) Authenticate(username, password string) (*Principal, error) {
	if len(c.username) == 0 || len(c.password) == 0 {
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), c.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), c.password)
	if userOK&passOK != 1 {
		return nil, ErrInvalidCredentials
	}

	return &Principal{Username: username, Role: RoleAdmin}, nil
}
