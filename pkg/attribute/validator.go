/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attribute

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/idcontact/irma-bridge/pkg/irma"
)

// Terminal session outcomes derived from the raw session status.
var (
	ErrSessionCancelled  = errors.New("session cancelled")
	ErrSessionTimeout    = errors.New("session timed out")
	ErrSessionIncomplete = errors.New("session incomplete")
	ErrInvalidProof      = errors.New("invalid proof")
)

// ResponseMismatchError is returned when the number of disclosed groups does
// not match the number of requested logical attributes.
type ResponseMismatchError struct {
	Requested int
	Disclosed int
}

func (e *ResponseMismatchError) Error() string {
	return fmt.Sprintf("mismatch between request and response: requested %d, disclosed %d",
		e.Requested, e.Disclosed)
}

// InvalidResponseError is returned when a disclosed group is malformed or
// carries an attribute identifier outside the allow-list for its position.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid IRMA response: %s", e.Reason)
}

// Validator classifies a raw session result and, on success, cross-checks the
// disclosed values against the configured allow-list.
type Validator struct {
	mapping Mapping
}

// NewValidator returns a new Validator instance.
func NewValidator(mapping Mapping) *Validator {
	return &Validator{
		mapping: mapping,
	}
}

// Validate turns a raw session result into logical name to raw value pairs.
// The disclosed groups must correspond positionally to the requested names,
// exactly as the mapper built the request.
func (v *Validator) Validate(names []string, result *irma.SessionResult) (map[string]string, error) {
	switch result.Status {
	case irma.SessionStatusCancelled:
		return nil, ErrSessionCancelled
	case irma.SessionStatusTimeout:
		return nil, ErrSessionTimeout
	case irma.SessionStatusDone:
	default:
		return nil, ErrSessionIncomplete
	}

	if result.ProofStatus != irma.ProofStatusValid {
		return nil, ErrInvalidProof
	}

	if len(names) != len(result.Disclosed) {
		return nil, &ResponseMismatchError{
			Requested: len(names),
			Disclosed: len(result.Disclosed),
		}
	}

	attributes := make(map[string]string, len(names))

	for i, name := range names {
		group := result.Disclosed[i]

		if len(group) != 1 {
			return nil, &InvalidResponseError{Reason: "incorrect number of attributes in inner conjunction"}
		}

		allowed, ok := v.mapping[name]
		if !ok {
			return nil, &UnknownAttributeError{Name: name}
		}

		if !lo.Contains(allowed, group[0].ID) {
			return nil, &InvalidResponseError{Reason: "incorrect attribute in inner conjunction"}
		}

		attributes[name] = group[0].RawValue
	}

	return attributes, nil
}
