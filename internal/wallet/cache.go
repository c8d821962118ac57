package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"donation-relay/internal/domain"
	"donation-relay/internal/infra"
)

// DefaultRefreshInterval bounds how long a signing client is reused before
// the wallet handshake is repeated.
const DefaultRefreshInterval = 120 * time.Second

// ConnectionState is the UI's view of the wallet connection.
type ConnectionState struct {
	Connected     bool
	EnabledWallet string
}

func (s ConnectionState) ready() bool {
	return s.Connected && s.EnabledWallet != ""
}

// CacheOptions configures a Cache. InitTimeout bounds one wallet handshake;
// zero leaves it unbounded, since enabling a wallet may wait on the user.
type CacheOptions struct {
	Connector       Connector
	RefreshInterval time.Duration
	InitTimeout     time.Duration
	Lovelace        uint64
	Now             func() time.Time
	Logger          *infra.Logger
}

// Cache keeps at most one initialized Client for the connected wallet and
// re-initializes it at most once per refresh interval. Concurrent misses
// share a single initialization. A Cache belongs to one UI session; create a
// new one per session instead of sharing it.
type Cache struct {
	connector   Connector
	refresh     time.Duration
	initTimeout time.Duration
	lovelace    uint64
	now         func() time.Time
	logger      *infra.Logger

	group singleflight.Group

	mu            sync.Mutex
	handle        *Client
	initializedAt time.Time
	generation    uint64
	announced     bool
}

// NewCache returns an empty cache.
func NewCache(opts CacheOptions) (*Cache, error) {
	if opts.Connector == nil {
		return nil, errors.New("wallet: connector is required")
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	lovelace := opts.Lovelace
	if lovelace == 0 {
		lovelace = DefaultEmulatorLovelace
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Cache{
		connector:   opts.Connector,
		refresh:     refresh,
		initTimeout: opts.InitTimeout,
		lovelace:    lovelace,
		now:         now,
		logger:      logger,
	}, nil
}

// Get returns the cached client for state, initializing a new one when the
// slot is empty, bound to another wallet, or older than the refresh interval.
// It returns (nil, nil) without touching the wallet when state is not
// connected. Failed initializations are never cached.
func (c *Cache) Get(ctx context.Context, state ConnectionState) (*Client, error) {
	if !state.ready() {
		c.Reset()
		return nil, nil
	}
	if h := c.fresh(state.EnabledWallet); h != nil {
		return h, nil
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	// The flight outlives any single caller: it runs detached from ctx and
	// each caller stops waiting on its own ctx instead.
	key := fmt.Sprintf("%s/%d", state.EnabledWallet, gen)
	ch := c.group.DoChan(key, func() (any, error) {
		// A flight that completed while this caller waited for the lock
		// may already have filled the slot.
		if h := c.fresh(state.EnabledWallet); h != nil {
			return h, nil
		}
		initCtx := context.WithoutCancel(ctx)
		if c.initTimeout > 0 {
			var cancel context.CancelFunc
			initCtx, cancel = context.WithTimeout(initCtx, c.initTimeout)
			defer cancel()
		}
		return c.initialize(initCtx, state.EnabledWallet, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Client), nil
	}
}

// Reset drops the cached client, e.g. when the wallet disconnects. An
// initialization already in flight will not repopulate the slot.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handle = nil
	c.initializedAt = time.Time{}
	c.generation++
}

// InitializedAt reports when the cached client was created. The zero time
// means the slot is empty.
func (c *Cache) InitializedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializedAt
}

func (c *Cache) fresh(wallet string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil || c.handle.Wallet() != wallet {
		return nil
	}
	if c.now().Sub(c.initializedAt) >= c.refresh {
		return nil
	}
	return c.handle
}

func (c *Cache) initialize(ctx context.Context, wallet string, gen uint64) (*Client, error) {
	c.logger.Debug().Str("wallet", wallet).Msg("wallet: initializing signing client")

	account, err := GenerateEmulatorAccount(c.lovelace)
	if err != nil {
		return nil, err
	}
	client := NewClient(NewEmulator(account))

	api, err := c.connector.Enable(ctx, wallet)
	if err != nil {
		c.logger.Error().Err(err).Str("wallet", wallet).Msg("wallet: signing client initialization failed")
		c.mu.Lock()
		if c.generation == gen {
			c.handle = nil
			c.initializedAt = time.Time{}
		}
		c.mu.Unlock()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("wallet: enable %s: %w", wallet, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrWalletRejected, err)
	}
	client.SelectWallet(wallet, api)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return nil, domain.ErrWalletNotConnected
	}
	c.handle = client
	c.initializedAt = c.now()
	if !c.announced {
		c.logger.Info().Str("wallet", wallet).Msg("wallet: signing client ready")
		c.announced = true
	}
	return client, nil
}
