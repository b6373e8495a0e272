/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"go.uber.org/zap"
)

// Log Fields.
const (
	FieldAttributes    = "attributes"
	FieldAttrURL       = "attrURL"
	FieldCallbackURL   = "callbackURL"
	FieldClientURL     = "clientURL"
	FieldContinuation  = "continuation"
	FieldIrmaServerURL = "irmaServerURL"
	FieldReason        = "reason"
	FieldRequestID     = "requestID"
	FieldSessionStatus = "sessionStatus"
)

// WithAttributes sets the Attributes field.
func WithAttributes(attributes []string) zap.Field {
	return zap.Strings(FieldAttributes, attributes)
}

// WithAttrURL sets the AttrURL field.
func WithAttrURL(attrURL string) zap.Field {
	return zap.String(FieldAttrURL, attrURL)
}

// WithCallbackURL sets the CallbackURL field.
func WithCallbackURL(callbackURL string) zap.Field {
	return zap.String(FieldCallbackURL, callbackURL)
}

// WithClientURL sets the ClientURL field.
func WithClientURL(clientURL string) zap.Field {
	return zap.String(FieldClientURL, clientURL)
}

// WithContinuation sets the Continuation field.
func WithContinuation(continuation string) zap.Field {
	return zap.String(FieldContinuation, continuation)
}

// WithIrmaServerURL sets the IrmaServerURL field.
func WithIrmaServerURL(serverURL string) zap.Field {
	return zap.String(FieldIrmaServerURL, serverURL)
}

// WithReason sets the Reason field.
func WithReason(reason string) zap.Field {
	return zap.String(FieldReason, reason)
}

// WithRequestID sets the RequestID field.
func WithRequestID(requestID string) zap.Field {
	return zap.String(FieldRequestID, requestID)
}

// WithSessionStatus sets the SessionStatus field.
func WithSessionStatus(status string) zap.Field {
	return zap.String(FieldSessionStatus, status)
}
