package networks

import (
	"time"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64
	GetBlockTime() time.Duration // in second

	// GetBlockConfirmations is the number of blocks a deployment waits for
	// after its tx is mined. Zero means the default of 1.
	GetBlockConfirmations() uint64
	// IsInProcess reports whether the network is an ephemeral chain living
	// inside the current process rather than behind an RPC endpoint.
	IsInProcess() bool

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	GetBlockExplorerAPIKeyVariableName() string
	GetBlockExplorerAPIURL() string

	MarshalJSON() ([]byte, error)
}
