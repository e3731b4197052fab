package vbox

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
)

const (
	usersFilename = "users.json"
	xdgAppDir     = "server_manager"
)

// UserInfo is a user account inside a guest.
type UserInfo struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// Users maps VM IDs or names to the user accounts of that VM.
type Users map[string][]UserInfo

// For returns the users of the virtual machine. They are looked up by ID
// first, then by name.
func (u Users) For(vm VirtualMachine) []UserInfo {
	if users, found := u[vm.ID]; found {
		return users
	}
	return u[vm.Name]
}

// LoadUsers reads users.json from the current directory, or from the
// server_manager directory in the XDG config home. When neither exists, an
// empty file is created in the latter.
func LoadUsers() (Users, error) {
	candidates := []string{usersFilename}
	if xdgPath, err := xdg.SearchConfigFile(filepath.Join(xdgAppDir, usersFilename)); err == nil {
		candidates = append(candidates, xdgPath)
	}

	users, found, err := loadFirstUsersFile(candidates)
	if err != nil || found {
		return users, err
	}

	createAt, err := xdg.ConfigFile(filepath.Join(xdgAppDir, usersFilename))
	if err != nil {
		return nil, fmt.Errorf("determining location of %s: %w", usersFilename, err)
	}
	return Users{}, createEmptyUsersFile(createAt)
}

// loadFirstUsersFile loads the first of the candidate files that exists.
func loadFirstUsersFile(candidates []string) (users Users, found bool, err error) {
	for _, path := range candidates {
		contents, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return nil, true, fmt.Errorf("reading %s: %w", path, err)
		}

		users := Users{}
		if err := json.Unmarshal(contents, &users); err != nil {
			return nil, true, fmt.Errorf("parsing %s: %w", path, err)
		}
		log.Debug().Str("file", path).Int("vms", len(users)).Msg("vbox: loaded guest users")
		return users, true, nil
	}
	return nil, false, nil
}

func createEmptyUsersFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	// The file will contain passwords, so keep it private.
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	log.Info().Str("file", path).Msg("vbox: created empty guest users file")
	return nil
}
