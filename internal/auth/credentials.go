// Package auth gates the admin console: credential check, token issue and
// the middleware that guards admin routes.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role allowed through RequireAdmin.
const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotConfigured      = errors.New("admin credentials are not configured")
)

// Credentials holds the single admin account.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials prefers an existing bcrypt hash; a plain password is hashed
// once at startup.
func NewCredentials(username, password, passwordHash string) (*Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotConfigured
	}
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, err
		}
		return &Credentials{username: username, hash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return nil, ErrNotConfigured
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Credentials{username: username, hash: hash}, nil
}

func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (c *Credentials) Username() string { return c.username }
