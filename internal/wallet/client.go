// Package wallet holds the signing client used to produce donation
// signatures and the cache that keeps one initialized client per wallet
// session.
package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
)

// DefaultEmulatorLovelace funds the single account of a fresh emulator.
const DefaultEmulatorLovelace uint64 = 100_000_000

var ErrNoWalletSelected = errors.New("wallet: no wallet selected")

// DataSignature is a CIP-30 signData result. Signature is the hex COSE_Sign1
// structure, Key the hex COSE_Key.
type DataSignature struct {
	Signature string
	Key       string
}

// API is the capability surface a browser wallet exposes once enabled.
type API interface {
	SignData(ctx context.Context, address, payloadHex string) (*DataSignature, error)
}

// Connector enables a named wallet extension and returns its API. Enable may
// prompt the user and fail when access is refused.
type Connector interface {
	Enable(ctx context.Context, walletName string) (API, error)
}

// EmulatorAccount is a locally generated key with a fake balance.
type EmulatorAccount struct {
	Address   string
	Lovelace  uint64
	PublicKey ed25519.PublicKey
}

// GenerateEmulatorAccount creates a throwaway account funded with lovelace.
func GenerateEmulatorAccount(lovelace uint64) (EmulatorAccount, error) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return EmulatorAccount{}, fmt.Errorf("wallet: generate emulator key: %w", err)
	}
	sum := sha256.Sum256(pub)
	return EmulatorAccount{
		Address:   "addr_emu1" + hex.EncodeToString(sum[:28]),
		Lovelace:  lovelace,
		PublicKey: pub,
	}, nil
}

// Emulator is an in-memory ledger view. It never talks to a network; the
// signing client only needs it to exist, not to submit transactions.
type Emulator struct {
	mu       sync.RWMutex
	accounts map[string]EmulatorAccount
}

// NewEmulator seeds a ledger with the given accounts.
func NewEmulator(accounts ...EmulatorAccount) *Emulator {
	e := &Emulator{accounts: make(map[string]EmulatorAccount, len(accounts))}
	for _, acc := range accounts {
		e.accounts[acc.Address] = acc
	}
	return e
}

// Balance returns the lovelace held by address on the emulated ledger.
func (e *Emulator) Balance(address string) (uint64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	acc, ok := e.accounts[address]
	return acc.Lovelace, ok
}

// Accounts returns the number of accounts on the ledger.
func (e *Emulator) Accounts() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.accounts)
}

// Client is a signing client bound to an emulated ledger and, once
// SelectWallet has been called, to a wallet API.
type Client struct {
	ledger *Emulator
	wallet string
	api    API
}

// NewClient creates a client on top of ledger with no wallet selected.
func NewClient(ledger *Emulator) *Client {
	return &Client{ledger: ledger}
}

// SelectWallet binds the client to a wallet's API.
func (c *Client) SelectWallet(name string, api API) {
	c.wallet = name
	c.api = api
}

// Wallet returns the name of the selected wallet.
func (c *Client) Wallet() string {
	return c.wallet
}

// Ledger returns the emulated ledger the client was built on.
func (c *Client) Ledger() *Emulator {
	return c.ledger
}

// SignMessage asks the selected wallet to sign payloadHex with the key
// behind address.
func (c *Client) SignMessage(ctx context.Context, address, payloadHex string) (*DataSignature, error) {
	if c.api == nil {
		return nil, ErrNoWalletSelected
	}
	return c.api.SignData(ctx, address, payloadHex)
}
