/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authbridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/idcontact/irma-bridge/internal/logfields"
	"github.com/idcontact/irma-bridge/pkg/attribute"
	"github.com/idcontact/irma-bridge/pkg/continuation"
	"github.com/idcontact/irma-bridge/pkg/irma"
	"github.com/idcontact/irma-bridge/pkg/sealer"
)

var logger = log.New("authbridge-service")

// ErrInvalidRequest tags request-level failures: malformed redirect-hop
// segments and unknown logical attribute names. Everything else that the
// service returns is a transport or packaging failure.
var ErrInvalidRequest = errors.New("invalid request")

type sessionClient interface {
	Start(ctx context.Context, request *irma.DisclosureRequest) (*irma.Session, error)
	StartWithCallback(ctx context.Context, request *irma.DisclosureRequest, callbackURL string) (*irma.Session, error)
	GetResult(ctx context.Context, token string) (*irma.SessionResult, error)
}

type attributeMapper interface {
	MapAttributes(names []string) (irma.ConDisCon, error)
}

type resultValidator interface {
	Validate(names []string, result *irma.SessionResult) (map[string]string, error)
}

type resultSealer interface {
	Seal(result *sealer.AuthResult) (string, error)
	SignSessionParams(continuation, qr string) (string, error)
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines configuration for Service.
type Config struct {
	SessionClient sessionClient
	Mapper        attributeMapper
	Validator     resultValidator
	Sealer        resultSealer
	HTTPClient    httpClient

	// ServerURL is the bridge's public base URL, reachable by the end-user's
	// browser. InternalURL is the base URL the IRMA server uses for
	// server-to-server callbacks.
	ServerURL   string
	InternalURL string
	IrmaUIURL   string
}

// Service orchestrates the in-band and out-of-band attribute disclosure
// flows. It holds no mutable state; request context travels in URL segments.
type Service struct {
	sessionClient sessionClient
	mapper        attributeMapper
	validator     resultValidator
	sealer        resultSealer
	httpClient    httpClient

	serverURL   string
	internalURL string
	irmaUIURL   string
}

// NewService returns a new Service instance.
func NewService(cfg *Config) *Service {
	client := cfg.HTTPClient

	if client == nil {
		client = http.DefaultClient
	}

	return &Service{
		sessionClient: cfg.SessionClient,
		mapper:        cfg.Mapper,
		validator:     cfg.Validator,
		sealer:        cfg.Sealer,
		httpClient:    client,
		serverURL:     cfg.ServerURL,
		internalURL:   cfg.InternalURL,
		irmaUIURL:     cfg.IrmaUIURL,
	}
}

// StartAuthentication starts a disclosure session for the requested logical
// attributes and returns the URL the end-user should be sent to.
func (s *Service) StartAuthentication(ctx context.Context, req *StartAuthRequest) (*StartAuthResponse, error) {
	requestID := uuid.NewString()

	logger.Debugc(ctx, "starting authentication",
		logfields.WithRequestID(requestID),
		logfields.WithAttributes(req.Attributes),
		logfields.WithContinuation(req.Continuation))

	condiscon, err := s.mapper.MapAttributes(req.Attributes)
	if err != nil {
		return nil, fmt.Errorf("%w: map attributes: %v", ErrInvalidRequest, err)
	}

	var clientURL string

	if req.AttrURL != nil {
		clientURL, err = s.startOutOfBand(ctx, req, condiscon, *req.AttrURL)
	} else {
		clientURL, err = s.startInBand(ctx, req, condiscon)
	}

	if err != nil {
		return nil, err
	}

	logger.Debugc(ctx, "authentication started",
		logfields.WithRequestID(requestID),
		logfields.WithClientURL(clientURL))

	return &StartAuthResponse{ClientURL: clientURL}, nil
}

// startInBand starts a session whose result returns with the end-user: the
// IRMA UI appends the session token to the bridge's decoration endpoint URL.
func (s *Service) startInBand(ctx context.Context, req *StartAuthRequest, condiscon irma.ConDisCon) (string, error) {
	encodedAttributes, err := continuation.EncodeAttributes(req.Attributes)
	if err != nil {
		return "", fmt.Errorf("encode attribute list: %w", err)
	}

	continueURL := fmt.Sprintf("%s/decorated_continue/%s/%s",
		s.serverURL, encodedAttributes, continuation.Encode(req.Continuation))

	session, err := s.sessionClient.Start(ctx, irma.NewDisclosureRequest(condiscon, continueURL, true))
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	return fmt.Sprintf("%s/auth/%s/%s", s.serverURL,
		continuation.Encode(session.QR),
		continuation.Encode(fmt.Sprintf("%s?token=%s", continueURL, session.Token))), nil
}

// startOutOfBand starts a session whose result the IRMA server reports to the
// bridge's completion endpoint, which then delivers it to attrURL.
func (s *Service) startOutOfBand(
	ctx context.Context,
	req *StartAuthRequest,
	condiscon irma.ConDisCon,
	attrURL string,
) (string, error) {
	encodedAttributes, err := continuation.EncodeAttributes(req.Attributes)
	if err != nil {
		return "", fmt.Errorf("encode attribute list: %w", err)
	}

	callbackURL := fmt.Sprintf("%s/session_complete/%s/%s",
		s.internalURL, encodedAttributes, continuation.Encode(attrURL))

	logger.Debugc(ctx, "requesting session completion callback", logfields.WithCallbackURL(callbackURL))

	session, err := s.sessionClient.StartWithCallback(ctx,
		irma.NewDisclosureRequest(condiscon, req.Continuation, false), callbackURL)
	if err != nil {
		return "", fmt.Errorf("start session with callback: %w", err)
	}

	return fmt.Sprintf("%s/auth/%s/%s", s.serverURL,
		continuation.Encode(session.QR),
		continuation.Encode(req.Continuation)), nil
}

// AuthRedirectURL reconstructs the session pointer and continuation from the
// redirect-hop segments and returns the IRMA UI URL carrying them as a signed
// params token.
func (s *Service) AuthRedirectURL(_ context.Context, qrSegment, continuationSegment string) (string, error) {
	continueURL, err := continuation.Decode(continuationSegment)
	if err != nil {
		return "", fmt.Errorf("%w: decode continuation: %v", ErrInvalidRequest, err)
	}

	qr, err := continuation.Decode(qrSegment)
	if err != nil {
		return "", fmt.Errorf("%w: decode qr: %v", ErrInvalidRequest, err)
	}

	token, err := s.sealer.SignSessionParams(continueURL, qr)
	if err != nil {
		return "", fmt.Errorf("sign session params: %w", err)
	}

	return fmt.Sprintf("%s?%s", s.irmaUIURL, token), nil
}

// CompleteInBand handles the end-user's return hop: it fetches and validates
// the session result, seals the outcome and returns the continuation URL with
// the sealed result appended.
func (s *Service) CompleteInBand(
	ctx context.Context,
	attributesSegment, continuationSegment, token string,
) (string, error) {
	names, err := continuation.DecodeAttributes(attributesSegment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	continueURL, err := continuation.Decode(continuationSegment)
	if err != nil {
		return "", fmt.Errorf("%w: decode continuation: %v", ErrInvalidRequest, err)
	}

	sealed, err := s.fetchAndSeal(ctx, names, token)
	if err != nil {
		return "", err
	}

	separator := "?"

	if strings.Contains(continueURL, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%sresult=%s", continueURL, separator, sealed), nil
}

// CompleteOutOfBand handles the IRMA server's completion callback: it fetches
// and validates the session result, seals the outcome and posts it to the
// caller-supplied attribute delivery URL. Delivery failures are logged only;
// the user-facing redirect has already completed independently.
func (s *Service) CompleteOutOfBand(ctx context.Context, attributesSegment, attrURLSegment, token string) error {
	names, err := continuation.DecodeAttributes(attributesSegment)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	attrURL, err := continuation.Decode(attrURLSegment)
	if err != nil {
		return fmt.Errorf("%w: decode attr url: %v", ErrInvalidRequest, err)
	}

	sealed, err := s.fetchAndSeal(ctx, names, token)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, attrURL, strings.NewReader(sealed))
	if err != nil {
		return fmt.Errorf("create delivery request: %w", err)
	}

	req.Header.Add("Content-Type", "application/jwt")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Errorc(ctx, "Failure reporting results", log.WithError(err), logfields.WithAttrURL(attrURL))

		return nil
	}

	if err = resp.Body.Close(); err != nil {
		logger.Warnc(ctx, "Failed to close delivery response body", log.WithError(err))
	}

	return nil
}

// fetchAndSeal fetches the raw result and seals either the validated
// attributes or a terminal failure outcome. Transport errors surface as plain
// errors; protocol and validation failures still produce a sealed token so
// the caller receives an authenticated "failed" result.
func (s *Service) fetchAndSeal(ctx context.Context, names []string, token string) (string, error) {
	result, err := s.sessionClient.GetResult(ctx, token)
	if err != nil {
		return "", fmt.Errorf("get session result: %w", err)
	}

	attributes, err := s.validator.Validate(names, result)
	if err != nil {
		reason, terminal := failureReason(err)
		if !terminal {
			return "", fmt.Errorf("validate session result: %w", err)
		}

		logger.Warnc(ctx, "sealing failed authentication result",
			logfields.WithSessionStatus(string(result.Status)),
			logfields.WithReason(string(reason)))

		return s.sealer.Seal(&sealer.AuthResult{
			Status: sealer.StatusFailed,
			Reason: reason,
		})
	}

	return s.sealer.Seal(&sealer.AuthResult{
		Status:     sealer.StatusSuccess,
		Attributes: attributes,
	})
}

// failureReason maps validation failures to sealed failure reasons. A false
// return means the error is not a terminal protocol outcome.
func failureReason(err error) (sealer.Reason, bool) {
	switch {
	case errors.Is(err, attribute.ErrSessionCancelled):
		return sealer.ReasonCancelled, true
	case errors.Is(err, attribute.ErrSessionTimeout):
		return sealer.ReasonTimeout, true
	case errors.Is(err, attribute.ErrSessionIncomplete):
		return sealer.ReasonIncomplete, true
	case errors.Is(err, attribute.ErrInvalidProof):
		return sealer.ReasonInvalidProof, true
	}

	var (
		mismatchErr *attribute.ResponseMismatchError
		invalidErr  *attribute.InvalidResponseError
	)

	if errors.As(err, &mismatchErr) || errors.As(err, &invalidErr) {
		return sealer.ReasonInvalidResponse, true
	}

	return "", false
}
