package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vboxhost/server-manager/internal/appinfo"
)

func (s *ServerManager) GetVersion(e echo.Context) error {
	return e.JSON(http.StatusOK, Version{
		Name:         appinfo.ApplicationName,
		Version:      appinfo.ApplicationVersion,
		GitHash:      appinfo.ApplicationGitHash,
		ReleaseCycle: appinfo.ReleaseCycle,
	})
}
