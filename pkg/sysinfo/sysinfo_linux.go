//go:build linux

package sysinfo

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"fmt"
	"strings"

	zsysinfo "github.com/zcalusic/sysinfo"
)

func description() (string, error) {
	var info zsysinfo.SysInfo
	info.GetSysInfo()
	return formatLinux(info.OS, info.Kernel), nil
}

func formatLinux(osInfo zsysinfo.OS, kernel zsysinfo.Kernel) string {
	name := strings.TrimSpace(osInfo.Name)
	if name == "" {
		name = "Linux"
	}

	parts := []string{name}
	if kernel.Release != "" {
		parts = append(parts, fmt.Sprintf("(kernel %s)", kernel.Release))
	}
	return strings.Join(parts, " ")
}
