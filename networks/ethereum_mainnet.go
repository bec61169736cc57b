package networks

var EthereumMainnet Network = NewEthereumMainnet()

type ethereumMainnet struct {
	*GenericNetwork
}

func NewEthereumMainnet() *ethereumMainnet {
	return &ethereumMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "mainnet",
			AlternativeNames:   []string{"ethereum"},
			ChainID:            1,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          12,
			BlockConfirmations: 2,
			NodeVariableName:   "MAINNET_RPC_URL",
			DefaultNodes: map[string]string{
				"publicnode": "https://ethereum-rpc.publicnode.com",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
