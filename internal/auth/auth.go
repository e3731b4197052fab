// Package auth checks the password that protects the Server Manager API.
package auth

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// PasswordChecker compares passwords against the configured one.
type PasswordChecker struct {
	configured string
	isHash     bool
}

// NewPasswordChecker returns a checker for the configured password. It can be
// plain text or a bcrypt hash. An empty password disables the check.
func NewPasswordChecker(configured string) *PasswordChecker {
	return &PasswordChecker{
		configured: configured,
		isHash:     isBcryptHash(configured),
	}
}

// Enabled returns whether a password is required at all. A nil checker
// requires nothing.
func (c *PasswordChecker) Enabled() bool {
	return c != nil && c.configured != ""
}

// Check returns whether the given password is acceptable.
func (c *PasswordChecker) Check(password string) bool {
	if !c.Enabled() {
		return true
	}

	if c.isHash {
		err := bcrypt.CompareHashAndPassword([]byte(c.configured), []byte(password))
		switch err {
		case nil:
			return true
		case bcrypt.ErrMismatchedHashAndPassword:
		default:
			log.Warn().AnErr("cause", err).Msg("auth: configured password hash cannot be used")
		}
		return false
	}

	return subtle.ConstantTimeCompare([]byte(c.configured), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash of the password, suitable for the
// configuration file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isBcryptHash(value string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
