/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attribute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idcontact/irma-bridge/pkg/attribute"
	"github.com/idcontact/irma-bridge/pkg/irma"
)

func TestValidator_Validate(t *testing.T) {
	mapping := attribute.Mapping{
		"email": {"pbdf.pbdf.email.email", "pbdf.sidn-pbdf.email.email"},
		"phone": {"pbdf.pbdf.mobilenumber.mobilenumber"},
	}

	validator := attribute.NewValidator(mapping)

	names := []string{"email", "phone"}

	validResult := func() *irma.SessionResult {
		return &irma.SessionResult{
			Status:      irma.SessionStatusDone,
			ProofStatus: irma.ProofStatusValid,
			Disclosed: [][]irma.DisclosedAttribute{
				{{ID: "pbdf.sidn-pbdf.email.email", RawValue: "a@b.com"}},
				{{ID: "pbdf.pbdf.mobilenumber.mobilenumber", RawValue: "+31612345678"}},
			},
		}
	}

	tests := []struct {
		name   string
		result func() *irma.SessionResult
		check  func(t *testing.T, attributes map[string]string, err error)
	}{
		{
			name:   "success",
			result: validResult,
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.NoError(t, err)
				require.Equal(t, map[string]string{
					"email": "a@b.com",
					"phone": "+31612345678",
				}, attributes)
			},
		},
		{
			name: "cancelled wins regardless of proof status",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Status = irma.SessionStatusCancelled
				r.ProofStatus = irma.ProofStatusInvalid

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.ErrorIs(t, err, attribute.ErrSessionCancelled)
				require.Nil(t, attributes)
			},
		},
		{
			name: "timeout wins regardless of proof status",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Status = irma.SessionStatusTimeout
				r.ProofStatus = irma.ProofStatusValid

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.ErrorIs(t, err, attribute.ErrSessionTimeout)
			},
		},
		{
			name: "initialized session is incomplete",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Status = irma.SessionStatusInitialized

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.ErrorIs(t, err, attribute.ErrSessionIncomplete)
			},
		},
		{
			name: "connected session is incomplete",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Status = irma.SessionStatusConnected

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.ErrorIs(t, err, attribute.ErrSessionIncomplete)
			},
		},
		{
			name: "done with invalid proof",
			result: func() *irma.SessionResult {
				r := validResult()
				r.ProofStatus = irma.ProofStatusExpired

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				require.ErrorIs(t, err, attribute.ErrInvalidProof)
			},
		},
		{
			name: "disclosed group count mismatch",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Disclosed = r.Disclosed[:1]

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				var mismatchErr *attribute.ResponseMismatchError

				require.ErrorAs(t, err, &mismatchErr)
				require.Equal(t, 2, mismatchErr.Requested)
				require.Equal(t, 1, mismatchErr.Disclosed)
			},
		},
		{
			name: "malformed inner conjunction",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Disclosed[0] = append(r.Disclosed[0],
					irma.DisclosedAttribute{ID: "pbdf.pbdf.email.email", RawValue: "extra"})

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				var invalidErr *attribute.InvalidResponseError

				require.ErrorAs(t, err, &invalidErr)
				require.Contains(t, invalidErr.Reason, "number of attributes")
			},
		},
		{
			name: "substituted attribute rejected",
			result: func() *irma.SessionResult {
				r := validResult()
				r.Disclosed[0] = []irma.DisclosedAttribute{
					{ID: "pbdf.pbdf.mobilenumber.mobilenumber", RawValue: "+31600000000"},
				}

				return r
			},
			check: func(t *testing.T, attributes map[string]string, err error) {
				var invalidErr *attribute.InvalidResponseError

				require.ErrorAs(t, err, &invalidErr)
				require.Contains(t, invalidErr.Reason, "incorrect attribute")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attributes, err := validator.Validate(names, tt.result())

			tt.check(t, attributes, err)
		})
	}

	t.Run("requested name missing from configuration", func(t *testing.T) {
		v := attribute.NewValidator(attribute.Mapping{})

		_, err := v.Validate([]string{"email"}, &irma.SessionResult{
			Status:      irma.SessionStatusDone,
			ProofStatus: irma.ProofStatusValid,
			Disclosed: [][]irma.DisclosedAttribute{
				{{ID: "pbdf.pbdf.email.email", RawValue: "a@b.com"}},
			},
		})

		var unknownErr *attribute.UnknownAttributeError

		require.ErrorAs(t, err, &unknownErr)
	})
}
