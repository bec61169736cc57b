package deployer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
)

var mockAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func storeWithMock(t *testing.T) deployments.Store {
	s := deployments.NewMemoryStore("hardhat")
	require.NoError(t, s.Save("MockV3Aggregator", &deployments.Deployment{Address: mockAddress}))
	return s
}

func TestResolvePriceFeedUsesMockOnDevelopmentChains(t *testing.T) {
	s := storeWithMock(t)
	for _, name := range []string{"hardhat", "localhost"} {
		feed, err := ResolvePriceFeed(name, 31337, nil, s.Get)
		require.NoError(t, err)
		assert.Equal(t, mockAddress, feed, name)
	}
}

func TestResolvePriceFeedMissingMock(t *testing.T) {
	empty := deployments.NewMemoryStore("localhost")
	_, err := ResolvePriceFeed("localhost", 31337, nil, empty.Get)
	assert.ErrorIs(t, err, deployments.ErrNotFound)
}

func TestResolvePriceFeedUsesTableOnLiveChains(t *testing.T) {
	s := storeWithMock(t)
	cases := map[uint64]string{
		1:        "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419",
		11155111: "0x694AA1769357215DE4FAC081bf1f309aDC325306",
		137:      "0xF9680D99D6C9589e2a93a78A04A279e509205945",
		42161:    "0x639Fe6ab55C921f74e7fac1ee960C0B6293ba612",
		10:       "0x13e3Ee699D1909E989722E753853AE30b17e08c5",
		8453:     "0x71041dddad3595F9CEd3DcCFBe3D1F4b0a16Bb70",
	}
	for chainID, want := range cases {
		feed, err := ResolvePriceFeed("live", chainID, nil, s.Get)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(want), feed, chainID)

		cfg, err := networks.GetHelperConfig(chainID)
		require.NoError(t, err)
		assert.Equal(t, feed, cfg.EthUsdPriceFeed)
	}
}

func TestResolvePriceFeedUnknownChain(t *testing.T) {
	_, err := ResolvePriceFeed("mystery", 424242, nil, storeWithMock(t).Get)
	assert.ErrorIs(t, err, ErrNoPriceFeed)
}

func TestResolvePriceFeedCustomDevelopmentChains(t *testing.T) {
	s := storeWithMock(t)

	feed, err := ResolvePriceFeed("sepolia", 11155111, []string{"sepolia"}, s.Get)
	require.NoError(t, err)
	assert.Equal(t, mockAddress, feed)

	// hardhat is no longer a development chain, so the table is used and
	// 1337 has no entry
	_, err = ResolvePriceFeed("hardhat", 1337, []string{"sepolia"}, s.Get)
	assert.ErrorIs(t, err, ErrNoPriceFeed)
}

func TestSelectScripts(t *testing.T) {
	names := func(scripts []Script) []string {
		var out []string
		for _, s := range scripts {
			out = append(out, s.Name)
		}
		return out
	}
	assert.Equal(t, []string{"00-deploy-mocks", "01-deploy-fund-me"}, names(SelectScripts(Scripts)))
	assert.Equal(t, []string{"00-deploy-mocks", "01-deploy-fund-me"}, names(SelectScripts(Scripts, "all")))
	assert.Equal(t, []string{"00-deploy-mocks"}, names(SelectScripts(Scripts, "mocks")))
	assert.Equal(t, []string{"00-deploy-mocks", "01-deploy-fund-me"}, names(SelectScripts(Scripts, "fundme", "mocks")))
	assert.Empty(t, SelectScripts(Scripts, "lottery"))
}

func TestBlockConfirmations(t *testing.T) {
	rt := &Runtime{Network: networks.Sepolia}
	assert.Equal(t, uint64(6), rt.BlockConfirmations())

	rt.Confirmations = 2
	assert.Equal(t, uint64(2), rt.BlockConfirmations())

	rt = &Runtime{Network: networks.NewGenericNetwork(networks.GenericNetworkConfig{Name: "devnet", ChainID: 5})}
	assert.Equal(t, uint64(1), rt.BlockConfirmations())
}
