/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package irma

// DisclosureContext is the JSON-LD context of an IRMA disclosure request.
const DisclosureContext = "https://irma.app/ld/request/disclosure/v2"

// SessionType is the type of an IRMA session as advertised in the QR payload.
type SessionType string

const (
	SessionTypeDisclosing SessionType = "disclosing"
	SessionTypeSigning    SessionType = "signing"
	SessionTypeIssuing    SessionType = "issuing"
)

// SessionStatus is the lifecycle status reported by the IRMA server.
type SessionStatus string

const (
	SessionStatusInitialized SessionStatus = "INITIALIZED"
	SessionStatusConnected   SessionStatus = "CONNECTED"
	SessionStatusCancelled   SessionStatus = "CANCELLED"
	SessionStatusDone        SessionStatus = "DONE"
	SessionStatusTimeout     SessionStatus = "TIMEOUT"
)

// ProofStatus is the proof verification status reported by the IRMA server.
type ProofStatus string

const (
	ProofStatusValid             ProofStatus = "VALID"
	ProofStatusInvalid           ProofStatus = "INVALID"
	ProofStatusInvalidTimestamp  ProofStatus = "INVALID_TIMESTAMP"
	ProofStatusUnmatchedRequest  ProofStatus = "UNMATCHED_REQUEST"
	ProofStatusMissingAttributes ProofStatus = "MISSING_ATTRIBUTES"
	ProofStatusExpired           ProofStatus = "EXPIRED"
)

// ConDisCon is the nested conjunction/disjunction/conjunction structure of an
// IRMA disclosure request: an outer conjunction of requested slots, each slot
// a disjunction of acceptable inner conjunctions of attribute identifiers.
type ConDisCon [][][]string

// DisclosureRequest is the wire form of a disclosure session request.
type DisclosureRequest struct {
	Context          string    `json:"@context"`
	Disclose         ConDisCon `json:"disclose"`
	ClientReturnURL  string    `json:"clientReturnUrl,omitempty"`
	AugmentReturnURL bool      `json:"augmentReturnUrl"`
}

// NewDisclosureRequest creates a disclosure request for the given
// conjunction/disjunction structure.
func NewDisclosureRequest(disclose ConDisCon, returnURL string, augmentReturn bool) *DisclosureRequest {
	return &DisclosureRequest{
		Context:          DisclosureContext,
		Disclose:         disclose,
		ClientReturnURL:  returnURL,
		AugmentReturnURL: augmentReturn,
	}
}

// extendedRequest wraps a disclosure request with a server-to-server callback
// URL that the IRMA server invokes once the session completes.
type extendedRequest struct {
	CallbackURL string             `json:"callbackUrl"`
	Request     *DisclosureRequest `json:"request"`
}

// SessionPointer is the payload the end-user's IRMA app consumes, either via
// QR code or deep link.
type SessionPointer struct {
	URL  string      `json:"u"`
	Type SessionType `json:"irmaqr"`
}

type sessionResponse struct {
	Token      string         `json:"token"`
	SessionPtr SessionPointer `json:"sessionPtr"`
}

// Session is a started disclosure session. Token is the sole correlator used
// to fetch the result later; QR is the serialized session pointer.
type Session struct {
	Token string
	QR    string
}

// DisclosedAttribute is a single attribute disclosed by the user.
type DisclosedAttribute struct {
	ID       string `json:"id"`
	RawValue string `json:"rawvalue"`
}

// SessionResult is the raw session result as reported by the IRMA server.
// Disclosed groups correspond positionally to the requested disjunctions.
type SessionResult struct {
	Status      SessionStatus          `json:"status"`
	ProofStatus ProofStatus            `json:"proofStatus"`
	Disclosed   [][]DisclosedAttribute `json:"disclosed"`
}
