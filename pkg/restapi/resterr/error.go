/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies REST-boundary failures.
type ErrorCode string

const (
	// BadRequest covers malformed bodies, undecodable redirect-hop segments
	// and unknown logical attribute names.
	BadRequest ErrorCode = "bad_request"
	// UpstreamError covers transport failures against the IRMA server and
	// the out-of-band delivery target.
	UpstreamError ErrorCode = "upstream_error"
	// SystemError covers everything else, signing and encryption included.
	SystemError ErrorCode = "system_error"
)

// CustomError is the single error type crossing the REST boundary. Component
// and FailedOperation locate the originating subsystem.
type CustomError struct {
	Code            ErrorCode
	Component       string
	FailedOperation string
	Err             error
}

func NewBadRequestError(err error) *CustomError {
	return &CustomError{Code: BadRequest, Err: err}
}

func NewUpstreamError(component, failedOperation string, err error) *CustomError {
	return &CustomError{
		Code:            UpstreamError,
		Component:       component,
		FailedOperation: failedOperation,
		Err:             err,
	}
}

func NewSystemError(component, failedOperation string, err error) *CustomError {
	return &CustomError{
		Code:            SystemError,
		Component:       component,
		FailedOperation: failedOperation,
		Err:             err,
	}
}

func (e *CustomError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s[component: %s, operation: %s]: %v",
			e.Code, e.Component, e.FailedOperation, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// HTTPCodeMsg maps the error to an HTTP status code and JSON body.
func (e *CustomError) HTTPCodeMsg() (int, interface{}) {
	body := map[string]interface{}{
		"code":    string(e.Code),
		"message": e.Err.Error(),
	}

	switch e.Code {
	case BadRequest:
		return http.StatusBadRequest, body
	case UpstreamError:
		return http.StatusBadGateway, body
	default:
		return http.StatusInternalServerError, body
	}
}
