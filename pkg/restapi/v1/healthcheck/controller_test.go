/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/idcontact/irma-bridge/pkg/restapi/v1/healthcheck"
)

func TestController_GetHealthcheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", http.NoBody)
	rec := httptest.NewRecorder()

	c := &healthcheck.Controller{}

	require.NoError(t, c.GetHealthcheck(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthcheck.HealthCheckResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.CurrentTime)
}
