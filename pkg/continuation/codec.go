/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package continuation encodes the caller-supplied continuation URL and the
// requested attribute list as URL-safe path segments, so that the redirect
// round trip through the IRMA UI can reconstruct the request context without
// server-side session state.
package continuation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Encode encodes an arbitrary string as a URL-safe path segment.
func Encode(value string) string {
	return base64.URLEncoding.EncodeToString([]byte(value))
}

// Decode reverses Encode. Malformed encodings and non-UTF8 payloads are
// request-level failures.
func Decode(segment string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return "", fmt.Errorf("decode segment: %w", err)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("decode segment: payload is not valid UTF-8")
	}

	return string(b), nil
}

// EncodeAttributes encodes a logical attribute name list as a URL-safe path
// segment. The list is serialized as a JSON string array before encoding.
func EncodeAttributes(names []string) (string, error) {
	b, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("marshal attribute list: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// DecodeAttributes reverses EncodeAttributes.
func DecodeAttributes(segment string) ([]string, error) {
	b, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("decode attribute list: %w", err)
	}

	var names []string

	if err = json.Unmarshal(b, &names); err != nil {
		return nil, fmt.Errorf("unmarshal attribute list: %w", err)
	}

	return names, nil
}
