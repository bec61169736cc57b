package networks

// Hardhat is the in-process development chain. It is backed by go-ethereum's
// simulated backend, so its chain id is the simulated backend's 1337 and
// everything deployed on it is gone when the process exits.
var Hardhat Network = NewHardhat()

type hardhat struct {
	*GenericNetwork
}

func NewHardhat() *hardhat {
	return &hardhat{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "hardhat",
			AlternativeNames:   []string{"simulated"},
			ChainID:            1337,
			NativeTokenSymbol:  "ETH",
			NativeTokenDecimal: 18,
			BlockTime:          0,
			BlockConfirmations: 1,
			InProcess:          true,
			DefaultNodes:       map[string]string{},
		}),
	}
}
