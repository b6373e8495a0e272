/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestCustomError(t *testing.T) {
	tests := []struct {
		name         string
		err          *CustomError
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "bad request",
			err:          NewBadRequestError(errors.New("missing token")),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "bad_request: missing token",
		},
		{
			name:         "upstream error",
			err:          NewUpstreamError("authbridge.Service", "StartAuthentication", errors.New("refused")),
			expectedCode: http.StatusBadGateway,
			expectedMsg:  "upstream_error[component: authbridge.Service, operation: StartAuthentication]: refused",
		},
		{
			name:         "system error",
			err:          NewSystemError("sealer", "Seal", errors.New("bad key")),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "system_error[component: sealer, operation: Seal]: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := tt.err.HTTPCodeMsg()

			require.Equal(t, tt.expectedCode, code)
			require.Equal(t, tt.expectedMsg, tt.err.Error())
		})
	}

	t.Run("unwrap", func(t *testing.T) {
		inner := errors.New("inner")

		require.ErrorIs(t, NewBadRequestError(inner), inner)
	})
}

func TestHTTPErrorHandler(t *testing.T) {
	handle := func(t *testing.T, err error) *httptest.ResponseRecorder {
		t.Helper()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		rec := httptest.NewRecorder()

		HTTPErrorHandler(err, e.NewContext(req, rec))

		return rec
	}

	t.Run("custom error", func(t *testing.T) {
		rec := handle(t, NewUpstreamError("authbridge.Service", "AuthRedirect", errors.New("refused")))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.JSONEq(t, `{"code":"upstream_error","message":"refused"}`, rec.Body.String())
	})

	t.Run("echo error", func(t *testing.T) {
		rec := handle(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
	})

	t.Run("plain error", func(t *testing.T) {
		rec := handle(t, errors.New("boom"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"code":"system_error","message":"boom"}`, rec.Body.String())
	})
}
