package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vboxhost/server-manager/internal/appinfo"
	"github.com/vboxhost/server-manager/internal/auth"
	"github.com/vboxhost/server-manager/internal/console"
	"github.com/vboxhost/server-manager/internal/vmstatus"
)

func serve(t *testing.T, ms mockedServerManager, request *http.Request) *http.Response {
	t.Helper()
	e := ms.server.NewEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, request)
	return rec.Result()
}

func TestGetVersion(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	resp := serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assertJSONResponse(t, resp, http.StatusOK, Version{
		Name:         appinfo.ApplicationName,
		Version:      appinfo.ApplicationVersion,
		GitHash:      appinfo.ApplicationGitHash,
		ReleaseCycle: appinfo.ReleaseCycle,
	})
}

func TestRoutesWithoutPassword(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	ms.vmStatus.EXPECT().VMs().Return([]vmstatus.VMStatus{})
	resp := serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/vms", nil))
	assertJSONResponse(t, resp, http.StatusOK, VMList{VMs: []vmstatus.VMStatus{}})

	ms.vmStatus.EXPECT().Snapshot(testVMID).Return(vmstatus.History{}, false)
	resp = serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/vms/"+testVMID+"/metrics", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ms.console.EXPECT().Result(gomock.Any(), "id-1").Return(console.CommandResult{}, console.ErrResultNotFound)
	resp = serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/console/history/id-1", nil))
	assertJSONResponse(t, resp, http.StatusNotFound, Error{Code: http.StatusNotFound, Message: "no such command result"})

	resp = serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBasicAuth(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "hunter2")

	{ // No credentials.
		resp := serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/vms", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
	}

	{ // Wrong password.
		req := httptest.NewRequest(http.MethodGet, "/api/vms", nil)
		req.SetBasicAuth("admin", "hunter3")
		resp := serve(t, ms, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	{ // Correct password, any username.
		ms.vmStatus.EXPECT().VMs().Return(nil)
		req := httptest.NewRequest(http.MethodGet, "/api/vms", nil)
		req.SetBasicAuth("whoever", "hunter2")
		resp := serve(t, ms, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{ // The version is public.
		resp := serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/version", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestNilPasswordChecker(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")
	ms.server.password = (*auth.PasswordChecker)(nil)

	ms.vmStatus.EXPECT().VMs().Return(nil)
	resp := serve(t, ms, httptest.NewRequest(http.MethodGet, "/api/vms", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServe(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	ms := newMockedServerManager(mockCtrl, "")

	// Find a free port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	listen := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- Serve(ctx, ms.server.NewEcho(), listen)
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listen + "/api/version")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-serveErr:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve() did not return after the context was cancelled")
	}
}
