package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// MissingFieldsMessage is returned to callers whose claim lacks a field.
const MissingFieldsMessage = "destination, origin, and signature are required"

// signingMessagePrefix is verified byte for byte by the upstream.
const signingMessagePrefix = "Assign accumulated Scavenger rights to: "

// DonationClaim asserts that the rights accumulated at Origin should be
// reassigned to Destination. Signature is the Origin key's signature over
// SigningMessage(Destination).
type DonationClaim struct {
	Destination string `json:"destination"`
	Origin      string `json:"origin"`
	Signature   string `json:"signature"`
}

// Validate checks that every field is present. Values are otherwise opaque;
// the upstream decides whether they are meaningful.
func (c DonationClaim) Validate() error {
	if c.Destination == "" || c.Origin == "" || c.Signature == "" {
		return &ValidationError{Message: MissingFieldsMessage}
	}
	return nil
}

// UpstreamResponse is the upstream's answer, passed through untouched.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        string
}

// SigningMessage returns the canonical message signed for a donation to dest.
func SigningMessage(dest string) string {
	return signingMessagePrefix + dest
}

// EncodeMessageHex returns the lowercase hex of the message's UTF-8 bytes.
func EncodeMessageHex(msg string) string {
	return hex.EncodeToString([]byte(msg))
}

// SignaturePayload is the signing flow's output as shown in the UI.
type SignaturePayload struct {
	DestinationAddress string `json:"destination_address"`
	OriginalAddress    string `json:"original_address"`
	SignatureHex       string `json:"signature_hex"`
}

// ErrorPayload occupies the same slot as a SignaturePayload when signing fails.
type ErrorPayload struct {
	Error string `json:"error"`
}

// ParseSignaturePayload decodes a payload produced by the signing flow and
// trims surrounding whitespace from its fields. original_address may be
// absent; the caller then supplies the origin.
func ParseSignaturePayload(raw []byte) (*SignaturePayload, error) {
	var p SignaturePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	p.DestinationAddress = strings.TrimSpace(p.DestinationAddress)
	p.OriginalAddress = strings.TrimSpace(p.OriginalAddress)
	p.SignatureHex = strings.TrimSpace(p.SignatureHex)
	if p.DestinationAddress == "" || p.SignatureHex == "" {
		return nil, ErrInvalidPayload
	}
	return &p, nil
}

// Claim converts the payload into a relay claim. A non-empty origin
// overrides the payload's original_address.
func (p SignaturePayload) Claim(origin string) DonationClaim {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = p.OriginalAddress
	}
	return DonationClaim{
		Destination: p.DestinationAddress,
		Origin:      origin,
		Signature:   p.SignatureHex,
	}
}
