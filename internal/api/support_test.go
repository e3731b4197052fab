package api

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vboxhost/server-manager/internal/api/mocks"
	"github.com/vboxhost/server-manager/internal/auth"
)

const (
	testHistoryLimit   = 50
	testDefaultTimeout = time.Hour
)

type mockedServerManager struct {
	server   *ServerManager
	vmStatus *mocks.MockVMStatusService
	vbox     *mocks.MockVBoxService
	console  *mocks.MockConsoleService
}

func newMockedServerManager(mockCtrl *gomock.Controller, password string) mockedServerManager {
	ms := mockedServerManager{
		vmStatus: mocks.NewMockVMStatusService(mockCtrl),
		vbox:     mocks.NewMockVBoxService(mockCtrl),
		console:  mocks.NewMockConsoleService(mockCtrl),
	}
	ms.server = NewServerManager(ms.vmStatus, ms.vbox, ms.console,
		auth.NewPasswordChecker(password),
		Options{HistoryLimit: testHistoryLimit, DefaultTimeout: testDefaultTimeout, Users: testUsers})
	return ms
}

// prepareMockedJSONRequest returns an `echo.Context` that has a JSON request body attached to it.
func (ms *mockedServerManager) prepareMockedJSONRequest(requestBody interface{}) echo.Context {
	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		panic(err)
	}

	c := ms.prepareMockedRequest(bytes.NewBuffer(bodyBytes))
	c.Request().Header.Add(echo.HeaderContentType, "application/json")
	return c
}

// prepareMockedRequest returns an `echo.Context` that has an empty request body attached to it.
// `body` may be `nil` to indicate "no body".
func (ms *mockedServerManager) prepareMockedRequest(body io.Reader) echo.Context {
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c
}

func getRecordedResponseRecorder(echoCtx echo.Context) *httptest.ResponseRecorder {
	writer := echoCtx.Response().Writer
	resp, ok := writer.(*httptest.ResponseRecorder)
	if !ok {
		panic(fmt.Sprintf("response writer was not a `*httptest.ResponseRecorder` but a %T", writer))
	}
	return resp
}

func getRecordedResponse(echoCtx echo.Context) *http.Response {
	return getRecordedResponseRecorder(echoCtx).Result()
}

// assertResponseJSON asserts that a recorded response is JSON with the given HTTP status code.
func assertResponseJSON(
	t *testing.T,
	echoCtx echo.Context,
	expectStatusCode int,
	expectBody interface{},
) {
	t.Helper()
	resp := getRecordedResponse(echoCtx)
	assertJSONResponse(t, resp, expectStatusCode, expectBody)
}

func assertJSONResponse(t *testing.T, resp *http.Response, expectStatusCode int, expectBody interface{}) {
	t.Helper()
	assert.Equal(t, expectStatusCode, resp.StatusCode)
	contentType := resp.Header.Get(echo.HeaderContentType)

	if !assert.Equal(t, "application/json; charset=UTF-8", contentType) {
		t.Fatalf("response not JSON but %q, not going to compare body", contentType)
		return
	}

	expectJSON, err := json.Marshal(expectBody)
	require.NoError(t, err)

	actualJSON, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.JSONEq(t, string(expectJSON), string(actualJSON))
}

func assertResponseAPIError(t *testing.T, echoCtx echo.Context, expectStatusCode int, expectMessage string) {
	t.Helper()
	assertResponseJSON(t, echoCtx, expectStatusCode, Error{
		Code:    expectStatusCode,
		Message: expectMessage,
	})
}

func assertResponseNoContent(t *testing.T, echoCtx echo.Context) {
	t.Helper()
	resp := getRecordedResponseRecorder(echoCtx)
	assert.Equal(t, http.StatusNoContent, resp.Code, "Unexpected status: %v", resp.Body.String())
}
