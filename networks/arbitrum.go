package networks

var ArbitrumMainnet Network = NewArbitrumMainnet()

type arbitrumMainnet struct {
	*GenericNetwork
}

func NewArbitrumMainnet() *arbitrumMainnet {
	return &arbitrumMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "arbitrum",
			AlternativeNames:   []string{"arbitrum-one"},
			ChainID:            42161,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          1,
			BlockConfirmations: 2,
			NodeVariableName:   "ARBITRUM_RPC_URL",
			DefaultNodes: map[string]string{
				"arbitrum": "https://arb1.arbitrum.io/rpc",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
