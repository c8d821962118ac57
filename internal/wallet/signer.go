package wallet

import (
	"context"
	"encoding/json"
	"strings"

	"donation-relay/internal/domain"
)

const (
	msgMissingDestination = "Please provide a destination address."
	msgMissingOrigin      = "Please provide a from address."
	msgNotInitialized     = "Signing client not initialized. Connect your wallet."
	msgSignFailed         = "Failed to sign message"
)

// Signer produces the donation payload shown to the user. Every outcome,
// success or failure, is a JSON document so the UI can render both in one
// read-only field.
type Signer struct {
	cache *Cache
}

// NewSigner creates a signer that draws its client from cache.
func NewSigner(cache *Cache) *Signer {
	return &Signer{cache: cache}
}

// SignDonation signs the canonical donation message for destination with
// origin's key and returns either a SignaturePayload or an ErrorPayload,
// indented for display.
func (s *Signer) SignDonation(ctx context.Context, state ConnectionState, origin, destination string) string {
	if destination == "" {
		return render(domain.ErrorPayload{Error: msgMissingDestination})
	}
	if origin == "" {
		return render(domain.ErrorPayload{Error: msgMissingOrigin})
	}

	client, err := s.cache.Get(ctx, state)
	if err != nil {
		return renderErr(err)
	}
	if client == nil {
		return render(domain.ErrorPayload{Error: msgNotInitialized})
	}

	payloadHex := domain.EncodeMessageHex(domain.SigningMessage(destination))
	sig, err := client.SignMessage(ctx, origin, payloadHex)
	if err != nil {
		return renderErr(err)
	}

	return render(domain.SignaturePayload{
		DestinationAddress: destination,
		OriginalAddress:    origin,
		SignatureHex:       sig.Signature,
	})
}

func renderErr(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = msgSignFailed
	}
	return render(domain.ErrorPayload{Error: msg})
}

func render(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error": "` + msgSignFailed + `"}`
	}
	return string(out)
}
