/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package irma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/idcontact/irma-bridge/internal/logfields"
)

var logger = log.New("irma-client")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines configuration for Client.
type Config struct {
	HTTPClient httpClient
	ServerURL  string
	// AuthToken, when set, is sent as Authorization header on session start.
	AuthToken string
}

// Client is a protocol adapter for the IRMA server session API. It carries no
// business rules; callers interpret the raw session result.
type Client struct {
	httpClient httpClient
	serverURL  string
	authToken  string
}

// NewClient returns a new Client instance.
func NewClient(config *Config) *Client {
	client := config.HTTPClient

	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		httpClient: client,
		serverURL:  config.ServerURL,
		authToken:  config.AuthToken,
	}
}

// Start starts a disclosure session.
func (c *Client) Start(ctx context.Context, request *DisclosureRequest) (*Session, error) {
	return c.startSession(ctx, request)
}

// StartWithCallback starts a disclosure session whose completion the IRMA
// server reports server-to-server to callbackURL.
func (c *Client) StartWithCallback(
	ctx context.Context,
	request *DisclosureRequest,
	callbackURL string,
) (*Session, error) {
	return c.startSession(ctx, &extendedRequest{
		CallbackURL: callbackURL,
		Request:     request,
	})
}

// GetResult fetches the raw result for a session token.
func (c *Client) GetResult(ctx context.Context, token string) (*SessionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/session/%s/result", c.serverURL, token), nil)
	if err != nil {
		return nil, fmt.Errorf("create result request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send result request: %w", err)
	}

	defer closeResponseBody(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)

		return nil, fmt.Errorf("session result: status code %d, msg: %s", resp.StatusCode, string(b))
	}

	var result SessionResult

	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode session result: %w", err)
	}

	return &result, nil
}

func (c *Client) startSession(ctx context.Context, body interface{}) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	logger.Debugc(ctx, "starting IRMA session", logfields.WithIrmaServerURL(c.serverURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/session",
		bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")

	if c.authToken != "" {
		req.Header.Add("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send session request: %w", err)
	}

	defer closeResponseBody(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)

		return nil, fmt.Errorf("session start: status code %d, msg: %s", resp.StatusCode, string(b))
	}

	var sessionResp sessionResponse

	if err = json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	qr, err := json.Marshal(sessionResp.SessionPtr)
	if err != nil {
		return nil, fmt.Errorf("marshal session pointer: %w", err)
	}

	return &Session{
		Token: sessionResp.Token,
		QR:    string(qr),
	}, nil
}

func closeResponseBody(ctx context.Context, body io.Closer) {
	if err := body.Close(); err != nil {
		logger.Errorc(ctx, "Failed to close response body", log.WithError(err))
	}
}
