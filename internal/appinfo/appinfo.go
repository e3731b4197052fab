// Package appinfo contains the name and version of the application.
package appinfo

// SPDX-License-Identifier: GPL-3.0-or-later

import "fmt"

// ApplicationName contains the application name.
const ApplicationName = "Server Manager"

// ApplicationVersion is the version number of the application.
// It is set during the build by the Magefile.
var ApplicationVersion = "set-during-build"

// ApplicationGitHash has the Git hash of the commit used to create this build.
// It is set during the build by the Magefile.
var ApplicationGitHash = "set-during-build"

// ReleaseCycle determines whether this is marked as release or as
// development build.
var ReleaseCycle = "set-during-build"

// FormattedApplicationInfo returns the application name & version as single string.
func FormattedApplicationInfo() string {
	return fmt.Sprintf("%s %s", ApplicationName, ApplicationVersion)
}
