/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authbridge

// StartAuthRequest asks the bridge to have the given logical attributes
// disclosed and to continue at the given URL afterwards. When AttrURL is set,
// the sealed result is delivered out-of-band to that URL instead of being
// appended to the continuation redirect.
type StartAuthRequest struct {
	Attributes   []string `json:"attributes"`
	Continuation string   `json:"continuation"`
	AttrURL      *string  `json:"attr_url,omitempty"`
}

// StartAuthResponse carries the URL the caller should send the end-user to.
type StartAuthResponse struct {
	ClientURL string `json:"client_url"`
}

// SessionCompleteRequest is the body of the IRMA server's server-to-server
// completion callback.
type SessionCompleteRequest struct {
	Token string `json:"token"`
}
