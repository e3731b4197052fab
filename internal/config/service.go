package config

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

// Service provides access to the Server Manager configuration.
type Service struct {
	config   Conf
	filename string
	getenv   func(string) string
}

// NewService returns a configuration service for the given file. An empty
// filename means the default, "server-manager.yaml" in the working directory.
func NewService(filename string) *Service {
	if filename == "" {
		filename = configFilename
	}
	return &Service{
		config:   DefaultConfig(),
		filename: filename,
		getenv:   os.Getenv,
	}
}

// Load parses the configuration file and applies the environment overrides.
// It returns whether the file existed. A missing file is not an error, in
// which case the defaults are used.
func (s *Service) Load() (bool, error) {
	config, err := loadConf(s.filename)
	fileFound := true

	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("file", s.filename).Msg("no configuration file, using defaults")
		fileFound = false
	case err != nil:
		return false, fmt.Errorf("loading %s: %w", s.filename, err)
	}

	if err := config.ApplyEnvironment(s.getenv); err != nil {
		return fileFound, err
	}

	s.config = config
	return fileFound, nil
}

// ConfigFilename returns the filename of the configuration file.
func (s *Service) ConfigFilename() string {
	return s.filename
}

func (s *Service) Get() *Conf {
	return &s.config
}

// Save writes the in-memory configuration to the config file.
func (s *Service) Save() error {
	if err := s.config.Write(s.filename); err != nil {
		return err
	}

	log.Info().Str("filename", s.filename).Msg("configuration file written")
	return nil
}
