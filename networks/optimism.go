package networks

var OptimismMainnet Network = NewOptimismMainnet()

type optimismMainnet struct {
	*GenericNetwork
}

func NewOptimismMainnet() *optimismMainnet {
	return &optimismMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "optimism",
			AlternativeNames:   []string{"op"},
			ChainID:            10,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			BlockConfirmations: 2,
			NodeVariableName:   "OPTIMISM_RPC_URL",
			DefaultNodes: map[string]string{
				"optimism": "https://mainnet.optimism.io",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
