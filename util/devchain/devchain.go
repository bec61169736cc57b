// Package devchain runs an in-process development chain on go-ethereum's
// simulated backend. Every sent transaction is mined right away, the way a
// hardhat node mines.
package devchain

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// ChainID of the simulated backend.
const ChainID uint64 = 1337

// DefaultBalance funds every account with 10000 ether.
var DefaultBalance = new(big.Int).Mul(big.NewInt(10000), big.NewInt(params.Ether))

type Chain struct {
	backend *simulated.Backend
	client  *Client
}

// New starts a chain where every address in funded holds balance.
func New(funded []common.Address, balance *big.Int) *Chain {
	if balance == nil {
		balance = DefaultBalance
	}
	alloc := types.GenesisAlloc{}
	for _, addr := range funded {
		alloc[addr] = types.Account{Balance: new(big.Int).Set(balance)}
	}
	backend := simulated.NewBackend(alloc)
	return &Chain{
		backend: backend,
		client: &Client{
			Client: backend.Client(),
			commit: backend.Commit,
		},
	}
}

func (c *Chain) Client() *Client {
	return c.client
}

// Mine seals a block, e.g. to add confirmations.
func (c *Chain) Mine() common.Hash {
	return c.client.mine()
}

func (c *Chain) Close() error {
	return c.backend.Close()
}

// Client is the node client of the chain. SendTransaction mines the block
// holding the transaction before it returns.
type Client struct {
	simulated.Client

	mu     sync.Mutex
	commit func() common.Hash
}

func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.commit()
	return nil
}

func (c *Client) mine() common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit()
}
