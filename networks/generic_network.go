package networks

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type GenericNetworkConfig struct {
	Name                            string            `json:"name"`
	AlternativeNames                []string          `json:"alternative_names"`
	ChainID                         uint64            `json:"chain_id"`
	NativeTokenSymbol               string            `json:"native_token_symbol"`
	NativeTokenDecimal              uint64            `json:"native_token_decimal"`
	BlockTime                       uint64            `json:"block_time"`
	BlockConfirmations              uint64            `json:"block_confirmations"`
	InProcess                       bool              `json:"in_process,omitempty"`
	NodeVariableName                string            `json:"node_variable_name"`
	DefaultNodes                    map[string]string `json:"default_nodes"`
	BlockExplorerAPIKeyVariableName string            `json:"block_explorer_api_key_variable_name"`
	BlockExplorerAPIURL             string            `json:"block_explorer_api_url"`
	// EthUsdPriceFeed is only read from custom network files, built-in
	// networks register their feed in helper_config.go.
	EthUsdPriceFeed *common.Address `json:"eth_usd_price_feed,omitempty"`
}

// GenericNetwork is a config driven network that uses an Etherscan-like
// explorer for verification.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
	}
	if config.NativeTokenDecimal == 0 {
		config.NativeTokenDecimal = 18
	}
	if config.AlternativeNames == nil {
		config.AlternativeNames = []string{}
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetBlockConfirmations() uint64 {
	return gn.config.BlockConfirmations
}

func (gn *GenericNetwork) IsInProcess() bool {
	return gn.config.InProcess
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetBlockExplorerAPIKeyVariableName() string {
	return gn.config.BlockExplorerAPIKeyVariableName
}

func (gn *GenericNetwork) GetBlockExplorerAPIURL() string {
	return gn.config.BlockExplorerAPIURL
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}
