package networks

// Localhost is a development node (hardhat node, anvil) listening on the
// default port.
var Localhost Network = NewLocalhost()

type localhost struct {
	*GenericNetwork
}

func NewLocalhost() *localhost {
	return &localhost{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "localhost",
			AlternativeNames:   []string{"anvil"},
			ChainID:            31337,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          1,
			BlockConfirmations: 1,
			NodeVariableName:   "LOCALHOST_RPC_URL",
			DefaultNodes: map[string]string{
				"local": "http://127.0.0.1:8545",
			},
		}),
	}
}
