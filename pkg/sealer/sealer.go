/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sealer packages an authentication outcome as a nested
// sign-then-encrypt token. The signed token carries the outcome claims; the
// encrypted token carries the entire serialized signed token as its payload.
// The order is fixed: encrypt-then-sign would let any holder of the public
// verification material read the attribute values without the decryption key.
package sealer

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
)

// ResultSubject is the fixed subject claim identifying a sealed result token.
const ResultSubject = "id-contact-attributes"

// Status is the terminal outcome of an authentication attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Reason qualifies a failed outcome.
type Reason string

const (
	ReasonCancelled       Reason = "cancelled"
	ReasonTimeout         Reason = "timeout"
	ReasonIncomplete      Reason = "incomplete"
	ReasonInvalidProof    Reason = "invalid-proof"
	ReasonInvalidResponse Reason = "invalid-response"
)

// AuthResult is the outcome handed back to the caller: either validated
// attribute values or a terminal failure status.
type AuthResult struct {
	Status     Status
	Attributes map[string]string
	Reason     Reason
}

// ResultClaims is the claim set of the inner signed token.
type ResultClaims struct {
	Subject    string            `json:"sub"`
	IssuedAt   int64             `json:"iat"`
	Status     Status            `json:"status"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Reason     Reason            `json:"reason,omitempty"`
}

// SessionParamsClaims is the claim set of the signed IRMA UI parameters token
// used on the /auth redirect hop.
type SessionParamsClaims struct {
	IssuedAt     int64  `json:"iat"`
	Continuation string `json:"continuation"`
	QR           string `json:"qr"`
}

// Sealer composes a signing capability and an encryption capability into the
// result packaging protocol.
type Sealer struct {
	signer    jose.Signer
	encrypter jose.Encrypter
	now       func() time.Time
}

// New returns a new Sealer instance.
func New(signer jose.Signer, encrypter jose.Encrypter) *Sealer {
	return &Sealer{
		signer:    signer,
		encrypter: encrypter,
		now:       time.Now,
	}
}

// Seal serializes the outcome into a single opaque compact token, safe to
// place in a URL query parameter or POST body. Any signing or encryption
// failure aborts the request; no partial token is returned.
func (s *Sealer) Seal(result *AuthResult) (string, error) {
	claims := &ResultClaims{
		Subject:    ResultSubject,
		IssuedAt:   s.now().Unix(),
		Status:     result.Status,
		Attributes: result.Attributes,
		Reason:     result.Reason,
	}

	raw, err := jwt.SignedAndEncrypted(s.signer, s.encrypter).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("seal result: %w", err)
	}

	return raw, nil
}

// SignSessionParams signs the QR payload and continuation URL for hand-off to
// the IRMA UI. This token is signed only: it carries no attribute values.
func (s *Sealer) SignSessionParams(continuation, qr string) (string, error) {
	claims := &SessionParamsClaims{
		IssuedAt:     s.now().Unix(),
		Continuation: continuation,
		QR:           qr,
	}

	raw, err := jwt.Signed(s.signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign session params: %w", err)
	}

	return raw, nil
}
