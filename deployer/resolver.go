package deployer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
)

var ErrNoPriceFeed = networks.ErrNoPriceFeed

// ResolvePriceFeed returns the ETH/USD feed FundMe is built with: the
// deployed mock on development networks, the configured aggregator of
// chainID elsewhere.
func ResolvePriceFeed(
	networkName string,
	chainID uint64,
	devChains []string,
	get func(name string) (*deployments.Deployment, error),
) (common.Address, error) {
	if networks.IsDevelopmentChain(networkName, devChains) {
		mock, err := get(contracts.MockV3AggregatorName)
		if err != nil {
			return common.Address{}, fmt.Errorf("price feed mock on %s: %w", networkName, err)
		}
		return mock.Address, nil
	}
	return networks.PriceFeedForChain(chainID)
}
