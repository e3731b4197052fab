package sysinfo

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const systemVersionPlist = "/System/Library/CoreServices/SystemVersion.plist"

// plistDict is the top-level dictionary of a property list. Keys and values
// alternate in the file, which works for SystemVersion.plist because all its
// values are strings.
type plistDict struct {
	XMLName xml.Name `xml:"plist"`
	Keys    []string `xml:"dict>key"`
	Strings []string `xml:"dict>string"`
}

func description() (string, error) {
	info, err := readSystemVersion(systemVersionPlist)
	if err != nil {
		log.Warn().Err(err).Msg("could not retrieve system information")
		return "macOS", nil
	}
	return info, nil
}

func readSystemVersion(plistFile string) (string, error) {
	data, err := os.ReadFile(plistFile)
	if err != nil {
		return "", fmt.Errorf("could not read system info file %s: %w", plistFile, err)
	}

	var plist plistDict
	if err := xml.Unmarshal(data, &plist); err != nil {
		return "", fmt.Errorf("failed to read system info from %s: %w", plistFile, err)
	}

	values := map[string]string{}
	for i, key := range plist.Keys {
		if i >= len(plist.Strings) {
			break
		}
		values[key] = plist.Strings[i]
	}

	productName := values["ProductName"]
	if productName == "" {
		productName = "macOS"
	}

	parts := []string{productName}
	if version := values["ProductVersion"]; version != "" {
		parts = append(parts, version)
	}
	if build := values["ProductBuildVersion"]; build != "" {
		parts = append(parts, fmt.Sprintf("(Build %s)", build))
	}
	return strings.Join(parts, " "), nil
}
