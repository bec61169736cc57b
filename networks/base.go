package networks

var BaseMainnet Network = NewBaseMainnet()

type baseMainnet struct {
	*GenericNetwork
}

func NewBaseMainnet() *baseMainnet {
	return &baseMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "base",
			AlternativeNames:   []string{},
			ChainID:            8453,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			BlockConfirmations: 2,
			NodeVariableName:   "BASE_RPC_URL",
			DefaultNodes: map[string]string{
				"public-base": "https://mainnet.base.org",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
