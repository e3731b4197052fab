package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vboxhost/server-manager/internal/vbox"
)

func (s *ServerManager) FetchVMs(e echo.Context) error {
	return e.JSON(http.StatusOK, VMList{VMs: s.vmStatus.VMs()})
}

func (s *ServerManager) FetchVMInfo(e echo.Context) error {
	vmID := e.Param("id")
	logger := requestLogger(e).With().Str("vm", vmID).Logger()

	ctx, cancel := context.WithTimeout(e.Request().Context(), vmInfoTimeout)
	defer cancel()

	info, err := s.vboxManage.ShowVMInfo(ctx, vmID)
	switch {
	case errors.Is(err, vbox.ErrCommandFailed):
		logger.Debug().AnErr("cause", err).Msg("api: VM info requested for unknown VM")
		return sendAPIError(e, http.StatusNotFound, "no such VM")
	case errors.Is(err, context.Canceled):
		logger.Debug().AnErr("cause", err).Msg("could not fetch VM info, remote end probably closed the connection")
		return sendAPIError(e, http.StatusInternalServerError, "error fetching VM info: %v", err)
	case err != nil:
		logger.Warn().Err(err).Msg("api: error fetching VM info")
		return sendAPIError(e, http.StatusInternalServerError, "error fetching VM info: %v", err)
	}

	return e.JSON(http.StatusOK, VMInfo{
		ID:     vmID,
		State:  info.State(),
		System: info.System(),
		Items:  info.Items(),
	})
}

func (s *ServerManager) FetchVMMetrics(e echo.Context) error {
	vmID := e.Param("id")

	history, ok := s.vmStatus.Snapshot(vmID)
	if !ok {
		return sendAPIError(e, http.StatusNotFound, "no such VM")
	}
	return e.JSON(http.StatusOK, vmMetricsToAPI(vmID, history))
}
