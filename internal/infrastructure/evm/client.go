// Package evm provides ledger RPC access via go-ethereum: view reads,
// transaction submission, and receipt polling for the funding flow.
package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps an ethclient connection to the chain's RPC endpoint and
// caches the chain ID.
type Client struct {
	rpcURL  string
	client  *ethclient.Client
	chainID *big.Int
}

// NewClient creates a new, unconnected EVM client.
func NewClient(rpcURL string) *Client {
	return &Client{rpcURL: rpcURL}
}

// Connect establishes the RPC connection and caches the chain ID.
func (c *Client) Connect(ctx context.Context) error {
	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to EVM RPC: %w", err)
	}
	c.client = client

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		c.client = nil
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	c.chainID = chainID
	return nil
}

// Eth returns the underlying ethclient, or nil before Connect.
func (c *Client) Eth() *ethclient.Client {
	return c.client
}

// ChainID returns a copy of the cached chain ID, or nil before Connect.
func (c *Client) ChainID() *big.Int {
	if c.chainID == nil {
		return nil
	}
	return new(big.Int).Set(c.chainID)
}

// Close closes the client connection. Idempotent.
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}
