package explorers

import (
	"context"
	"fmt"

	"github.com/tranvictor/fundme/networks"
)

type BlockExplorer interface {
	RecommendedGasPrice(ctx context.Context) (float64, error)
	GetABIString(ctx context.Context, address string) (string, error)
	Verify(ctx context.Context, r VerifyRequest) error
}

// NewExplorerForNetwork returns the Etherscan-like explorer of n.
func NewExplorerForNetwork(n networks.Network, apiKey string) (*EtherscanLikeExplorer, error) {
	if n.GetBlockExplorerAPIURL() == "" {
		return nil, fmt.Errorf("%s has no block explorer", n.GetName())
	}
	return NewEtherscanLikeExplorer(n.GetBlockExplorerAPIURL(), apiKey, n.GetChainID()), nil
}
