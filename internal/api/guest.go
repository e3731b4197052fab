package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vboxhost/server-manager/internal/vbox"
)

// virtualMachine returns the VM with this ID. VMs the status daemon has not
// seen yet are returned without a name.
func (s *ServerManager) virtualMachine(vmID string) vbox.VirtualMachine {
	for _, status := range s.vmStatus.VMs() {
		if status.ID == vmID {
			return status.VirtualMachine
		}
	}
	return vbox.VirtualMachine{ID: vmID}
}

func (s *ServerManager) FetchVMUsers(e echo.Context) error {
	vm := s.virtualMachine(e.Param("id"))

	users := s.users.For(vm)
	result := GuestUsers{Users: make([]GuestUser, len(users))}
	for i, user := range users {
		result.Users[i] = GuestUser{Username: user.Username, IsAdmin: user.IsAdmin}
	}
	return e.JSON(http.StatusOK, result)
}

// GuestRun runs an executable inside the VM, as one of the users from the
// users file.
func (s *ServerManager) GuestRun(e echo.Context) error {
	vm := s.virtualMachine(e.Param("id"))
	logger := requestLogger(e).With().Str("vm", vm.ID).Logger()

	var request GuestRunRequest
	if err := e.Bind(&request); err != nil {
		logger.Warn().Err(err).Msg("api: bad request received")
		return sendAPIError(e, http.StatusBadRequest, "invalid format")
	}
	if strings.TrimSpace(request.Executable) == "" {
		return sendAPIError(e, http.StatusBadRequest, "executable is empty")
	}

	user, found := findUser(s.users.For(vm), request.Username)
	if !found {
		logger.Warn().Str("username", request.Username).Msg("api: guest command requested for unknown user")
		return sendAPIError(e, http.StatusNotFound, "no such user for this VM")
	}

	ctx, cancel := context.WithTimeout(e.Request().Context(), guestRunTimeout)
	defer cancel()

	output, err := s.vboxManage.GuestControlRun(ctx, vm.ID, user, request.Executable, request.Args...)
	if err != nil {
		logger.Warn().Err(err).Msg("api: error running command in guest")
		return sendAPIError(e, http.StatusInternalServerError, "error running command in guest: %v", err)
	}

	logger.Info().
		Str("username", user.Username).
		Str("executable", request.Executable).
		Int("returnCode", output.ExitCode).
		Msg("api: command ran in guest")

	return e.JSON(http.StatusOK, GuestRunResult{
		ReturnCode: output.ExitCode,
		Stdout:     string(output.Stdout),
		Stderr:     string(output.Stderr),
	})
}

func findUser(users []vbox.UserInfo, username string) (vbox.UserInfo, bool) {
	for _, user := range users {
		if user.Username == username {
			return user, true
		}
	}
	return vbox.UserInfo{}, false
}
