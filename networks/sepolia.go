package networks

var Sepolia Network = NewSepolia()

type sepolia struct {
	*GenericNetwork
}

func NewSepolia() *sepolia {
	return &sepolia{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "sepolia",
			AlternativeNames:   []string{},
			ChainID:            11155111,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          12,
			BlockConfirmations: 6,
			NodeVariableName:   "SEPOLIA_RPC_URL",
			DefaultNodes: map[string]string{
				"publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
