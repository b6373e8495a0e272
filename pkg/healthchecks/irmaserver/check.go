/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package irmaserver

import (
	"context"
	"fmt"
	"net/http"
)

// New returns a health check that probes the IRMA server base URL.
func New(serverURL string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL, nil)
		if err != nil {
			return fmt.Errorf("create probe request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("probe IRMA server: %w", err)
		}

		return resp.Body.Close()
	}
}
