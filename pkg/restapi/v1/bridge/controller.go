/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/idcontact/irma-bridge/pkg/continuation"
	"github.com/idcontact/irma-bridge/pkg/restapi/resterr"
	"github.com/idcontact/irma-bridge/pkg/service/authbridge"
)

var logger = log.New("bridge-api")

const (
	bridgeSvcComponent = "authbridge.Service"

	qrImageSize = 256
)

type bridgeService interface {
	StartAuthentication(ctx context.Context, req *authbridge.StartAuthRequest) (*authbridge.StartAuthResponse, error)
	AuthRedirectURL(ctx context.Context, qrSegment, continuationSegment string) (string, error)
	CompleteInBand(ctx context.Context, attributesSegment, continuationSegment, token string) (string, error)
	CompleteOutOfBand(ctx context.Context, attributesSegment, attrURLSegment, token string) error
}

// Config holds configuration options for Controller.
type Config struct {
	BridgeSvc bridgeService
}

// Controller for the authentication bridge API.
type Controller struct {
	bridgeSvc bridgeService
}

// NewController creates a new Controller instance.
func NewController(config *Config) *Controller {
	return &Controller{
		bridgeSvc: config.BridgeSvc,
	}
}

// Register mounts the bridge routes on the given echo instance.
func (c *Controller) Register(e *echo.Echo) {
	e.POST("/start_authentication", c.StartAuthentication)
	e.GET("/auth/:qr/:continuation", c.AuthRedirect)
	e.GET("/decorated_continue/:attributes/:continuation", c.DecoratedContinue)
	e.POST("/session_complete/:attributes/:attrurl", c.SessionComplete)
	e.GET("/qr/:qr", c.QRImage)
}

// StartAuthentication starts a disclosure session (POST /start_authentication).
func (c *Controller) StartAuthentication(e echo.Context) error {
	var body authbridge.StartAuthRequest

	if err := e.Bind(&body); err != nil {
		return resterr.NewBadRequestError(err)
	}

	resp, err := c.bridgeSvc.StartAuthentication(e.Request().Context(), &body)
	if err != nil {
		return mapServiceError("StartAuthentication", err)
	}

	return e.JSON(http.StatusOK, resp)
}

// AuthRedirect sends the end-user into the IRMA UI (GET /auth/{qr}/{continuation}).
func (c *Controller) AuthRedirect(e echo.Context) error {
	redirectURL, err := c.bridgeSvc.AuthRedirectURL(e.Request().Context(),
		e.Param("qr"), e.Param("continuation"))
	if err != nil {
		return mapServiceError("AuthRedirect", err)
	}

	return e.Redirect(http.StatusFound, redirectURL)
}

// DecoratedContinue handles the in-band return hop
// (GET /decorated_continue/{attributes}/{continuation}?token=...).
func (c *Controller) DecoratedContinue(e echo.Context) error {
	token := e.QueryParam("token")
	if token == "" {
		return resterr.NewBadRequestError(errors.New("missing token query parameter"))
	}

	redirectURL, err := c.bridgeSvc.CompleteInBand(e.Request().Context(),
		e.Param("attributes"), e.Param("continuation"), token)
	if err != nil {
		return mapServiceError("DecoratedContinue", err)
	}

	return e.Redirect(http.StatusFound, redirectURL)
}

// SessionComplete handles the IRMA server's out-of-band completion callback
// (POST /session_complete/{attributes}/{attrurl}).
func (c *Controller) SessionComplete(e echo.Context) error {
	var body authbridge.SessionCompleteRequest

	if err := e.Bind(&body); err != nil {
		return resterr.NewBadRequestError(err)
	}

	if body.Token == "" {
		return resterr.NewBadRequestError(errors.New("missing session token"))
	}

	err := c.bridgeSvc.CompleteOutOfBand(e.Request().Context(),
		e.Param("attributes"), e.Param("attrurl"), body.Token)
	if err != nil {
		return mapServiceError("SessionComplete", err)
	}

	return e.NoContent(http.StatusOK)
}

// QRImage renders the session pointer as a QR code PNG (GET /qr/{qr}) for
// browsers that cannot deep-link into the IRMA app.
func (c *Controller) QRImage(e echo.Context) error {
	qr, err := continuation.Decode(e.Param("qr"))
	if err != nil {
		return resterr.NewBadRequestError(err)
	}

	png, err := qrcode.Encode(qr, qrcode.Medium, qrImageSize)
	if err != nil {
		return resterr.NewSystemError(bridgeSvcComponent, "QRImage", err)
	}

	return e.Blob(http.StatusOK, "image/png", png)
}

func mapServiceError(operation string, err error) error {
	logger.Error("bridge operation failed", log.WithError(err))

	if errors.Is(err, authbridge.ErrInvalidRequest) {
		return resterr.NewBadRequestError(err)
	}

	return resterr.NewUpstreamError(bridgeSvcComponent, operation, err)
}
