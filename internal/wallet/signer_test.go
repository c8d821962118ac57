package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"donation-relay/internal/domain"
)

func TestSignDonationProducesPayload(t *testing.T) {
	api := &stubAPI{signature: "84582aa201276761646472657373"}
	conn := &stubConnector{api: api}
	signer := NewSigner(newTestCache(t, conn, newFakeClock()))

	out := signer.SignDonation(context.Background(),
		ConnectionState{Connected: true, EnabledWallet: "eternl"},
		"addr1orig", "addr1dest")

	var payload domain.SignaturePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, domain.SignaturePayload{
		DestinationAddress: "addr1dest",
		OriginalAddress:    "addr1orig",
		SignatureHex:       "84582aa201276761646472657373",
	}, payload)

	require.Equal(t, "addr1orig", api.gotAddr)
	require.Equal(t, domain.EncodeMessageHex("Assign accumulated Scavenger rights to: addr1dest"), api.gotHex)
	require.Contains(t, out, "\n  \"destination_address\"")
}

func TestSignDonationRendersErrors(t *testing.T) {
	connected := ConnectionState{Connected: true, EnabledWallet: "eternl"}

	tests := []struct {
		name        string
		conn        *stubConnector
		state       ConnectionState
		origin      string
		destination string
		want        string
	}{
		{
			name:   "missing destination",
			conn:   &stubConnector{},
			state:  connected,
			origin: "addr1orig",
			want:   msgMissingDestination,
		},
		{
			name:        "missing origin",
			conn:        &stubConnector{},
			state:       connected,
			destination: "addr1dest",
			want:        msgMissingOrigin,
		},
		{
			name:        "not connected",
			conn:        &stubConnector{},
			origin:      "addr1orig",
			destination: "addr1dest",
			want:        msgNotInitialized,
		},
		{
			name:        "user declined signing",
			conn:        &stubConnector{api: &stubAPI{err: errors.New("user declined sign data")}},
			state:       connected,
			origin:      "addr1orig",
			destination: "addr1dest",
			want:        "user declined sign data",
		},
		{
			name:        "wallet refused access",
			conn:        &stubConnector{err: errors.New("account changed")},
			state:       connected,
			origin:      "addr1orig",
			destination: "addr1dest",
			want:        "wallet rejected the request: account changed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := NewSigner(newTestCache(t, tt.conn, newFakeClock()))
			out := signer.SignDonation(context.Background(), tt.state, tt.origin, tt.destination)

			var payload domain.ErrorPayload
			require.NoError(t, json.Unmarshal([]byte(out), &payload))
			require.Equal(t, tt.want, payload.Error)
		})
	}
}

func TestClientWithoutWalletCannotSign(t *testing.T) {
	client := NewClient(NewEmulator())
	_, err := client.SignMessage(context.Background(), "addr1orig", "00")
	require.ErrorIs(t, err, ErrNoWalletSelected)
}

func TestGenerateEmulatorAccount(t *testing.T) {
	acc, err := GenerateEmulatorAccount(DefaultEmulatorLovelace)
	require.NoError(t, err)
	require.Len(t, acc.PublicKey, 32)

	ledger := NewEmulator(acc)
	balance, ok := ledger.Balance(acc.Address)
	require.True(t, ok)
	require.Equal(t, DefaultEmulatorLovelace, balance)

	_, ok = ledger.Balance("addr1unknown")
	require.False(t, ok)
}
