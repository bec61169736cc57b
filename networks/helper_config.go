package networks

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// Constructor arguments of the MockV3Aggregator deployed on development
// chains: an ETH/USD answer of 2000 with 8 decimals.
const DECIMALS uint8 = 8

var INITIAL_ANSWER = big.NewInt(200000000000)

// DevelopmentChains are the networks that get a mock price feed instead of a
// real one.
var DevelopmentChains = []string{"hardhat", "localhost"}

var ErrNoPriceFeed = errors.New("no price feed configured")

type HelperConfig struct {
	Name            string
	EthUsdPriceFeed common.Address
}

// Chainlink ETH/USD aggregators keyed by chain id.
var networkConfig = map[uint64]HelperConfig{
	1: {
		Name:            "mainnet",
		EthUsdPriceFeed: common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"),
	},
	11155111: {
		Name:            "sepolia",
		EthUsdPriceFeed: common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306"),
	},
	137: {
		Name:            "polygon",
		EthUsdPriceFeed: common.HexToAddress("0xF9680D99D6C9589e2a93a78A04A279e509205945"),
	},
	42161: {
		Name:            "arbitrum",
		EthUsdPriceFeed: common.HexToAddress("0x639Fe6ab55C921f74e7fac1ee960C0B6293ba612"),
	},
	10: {
		Name:            "optimism",
		EthUsdPriceFeed: common.HexToAddress("0x13e3Ee699D1909E989722E753853AE30b17e08c5"),
	},
	8453: {
		Name:            "base",
		EthUsdPriceFeed: common.HexToAddress("0x71041dddad3595F9CEd3DcCFBe3D1F4b0a16Bb70"),
	},
}

// IsDevelopmentChain reports whether name is one of devChains. A nil
// devChains falls back to DevelopmentChains.
func IsDevelopmentChain(name string, devChains []string) bool {
	if devChains == nil {
		devChains = DevelopmentChains
	}
	return slices.Contains(devChains, name)
}

func GetHelperConfig(chainID uint64) (HelperConfig, error) {
	cfg, found := networkConfig[chainID]
	if !found {
		return HelperConfig{}, fmt.Errorf("chain id %d: %w", chainID, ErrNoPriceFeed)
	}
	return cfg, nil
}

func PriceFeedForChain(chainID uint64) (common.Address, error) {
	cfg, err := GetHelperConfig(chainID)
	if err != nil {
		return common.Address{}, err
	}
	return cfg.EthUsdPriceFeed, nil
}

// registerPriceFeed is only called while the network registry is built at
// package init.
func registerPriceFeed(chainID uint64, name string, feed common.Address) {
	networkConfig[chainID] = HelperConfig{
		Name:            name,
		EthUsdPriceFeed: feed,
	}
}
