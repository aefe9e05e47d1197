package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/erth-network/anml-cli/client"
	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/core/wallet"
)

// Dialer builds an SDK client bound to a wallet.
type Dialer func(endpoint, chainID string, w *wallet.Wallet) client.Client

// Session is a connected, wallet-bound client. It is built per operation and never shared.
type Session struct {
	Endpoint string
	ChainID  string
	Network  string
	Wallet   *wallet.Wallet
	Client   client.Client
}

// Connect derives the wallet, dials the node and performs exactly one liveness round trip.
func Connect(ctx context.Context, cfg Config, dial Dialer, out io.Writer) (*Session, error) {
	if strings.TrimSpace(cfg.Mnemonic) == "" {
		return nil, fmt.Errorf("%w: MNEMONIC not found in environment variables", ErrConfiguration)
	}

	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}
	chainID := cfg.ChainID
	if chainID == "" {
		chainID = DefaultChainID
	}

	fmt.Fprintf(out, "Connecting to %s (chain ID: %s)\n", endpoint, chainID)

	w, err := wallet.FromMnemonic(cfg.Mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	fmt.Fprintf(out, "Wallet initialized with address: %s\n", w.Address())

	c := dial(endpoint, chainID, w)
	info, err := concurrent.ExecuteWithTimeout(ctx, concurrent.ConnectTimeout, c.NodeInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, endpoint, err)
	}
	fmt.Fprintf(out, "Successfully connected to the network (Chain ID: %s)\n", info.Network)

	return &Session{
		Endpoint: endpoint,
		ChainID:  chainID,
		Network:  info.Network,
		Wallet:   w,
		Client:   c,
	}, nil
}
