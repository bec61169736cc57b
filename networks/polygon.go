package networks

var PolygonMainnet Network = NewPolygonMainnet()

type polygonMainnet struct {
	*GenericNetwork
}

func NewPolygonMainnet() *polygonMainnet {
	return &polygonMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "polygon",
			AlternativeNames:   []string{"matic"},
			ChainID:            137,
			NativeTokenSymbol:  "POL",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			BlockConfirmations: 5,
			NodeVariableName:   "POLYGON_RPC_URL",
			DefaultNodes: map[string]string{
				"polygon-rpc": "https://polygon-rpc.com",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
			BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
		}),
	}
}
