package config

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"encoding/json"
	"fmt"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Duration is a time.Duration that is written as "1h30m" in YAML and JSON.
type Duration time.Duration

var _ json.Unmarshaler = (*Duration)(nil)
var _ json.Marshaler = Duration(0)
var _ yaml.Unmarshaler = (*Duration)(nil)
var _ yaml.Marshaler = Duration(0)

// D returns the duration as time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var value string
	if err := json.Unmarshal(b, &value); err != nil {
		return fmt.Errorf("duration should be a string like \"5s\": %w", err)
	}
	return d.parse(value)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}
	return d.parse(value)
}

func (d *Duration) parse(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
