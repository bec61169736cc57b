package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	Hardhat,
	Localhost,
	EthereumMainnet,
	Sepolia,
	PolygonMainnet,
	ArbitrumMainnet,
	OptimismMainnet,
	BaseMainnet,
}

var globalSupportedNetworks = newSupportedNetworks(CustomNetworksDir())

// CustomNetworksDir is where user defined networks are stored, one json
// file per network.
func CustomNetworksDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fundme", "networks")
}

func newSupportedNetworks(customDir string) *networks {
	result := networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n); err != nil {
			panic(err)
		}
	}

	if customDir == "" {
		return &result
	}
	customNetworks, err := loadCustomNetworks(customDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to load custom networks: %s. Ignore and continue with built-in networks.\n", err)
		return &result
	}

	for _, n := range customNetworks {
		if _, found := result.networks[n.GetName()]; found {
			fmt.Fprintf(os.Stderr, "Network with name '%s' already exists. Using custom network.\n", n.GetName())
		}
		result.replace(n)
		if feed := n.config.EthUsdPriceFeed; feed != nil {
			registerPriceFeed(n.GetChainID(), n.GetName(), *feed)
		}
	}
	return &result
}

func loadCustomNetworks(dir string) ([]*GenericNetwork, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []*GenericNetwork{}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := newGenericNetworkFromJSON(content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}

		networks = append(networks, network)
	}

	return networks, nil
}

func newGenericNetworkFromJSON(content []byte) (*GenericNetwork, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	if networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config '%s' has no chain id", networkConfig.Name)
	}

	return NewGenericNetwork(networkConfig), nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	return newGenericNetworkFromJSON(content)
}

// AddNetwork registers network for this process and stores it to
// CustomNetworksDir so later runs pick it up.
func AddNetwork(network Network) error {
	globalSupportedNetworks.replace(network)

	dir := CustomNetworksDir()
	if dir == "" {
		return fmt.Errorf("failed to locate the home directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, fmt.Sprintf("%s.json", network.GetName())), content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}

	return nil
}
