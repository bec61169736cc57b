package networks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var ErrNetworkNotFound = errors.New("network not found")

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	res, found := n.networks[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		suggestions := n.suggest(name)
		if len(suggestions) > 0 {
			return nil, fmt.Errorf(
				"network name '%s': %w (did you mean %s?)",
				name, ErrNetworkNotFound, strings.Join(suggestions, ", "),
			)
		}
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

// suggest returns up to 3 registered names that fuzzy match name, best first.
func (n *networks) suggest(name string) []string {
	matches := fuzzy.Find(strings.ToLower(name), n.getSupportedNetworkNames())
	res := []string{}
	for i, m := range matches {
		if i == 3 {
			break
		}
		res = append(res, m.Str)
	}
	return res
}

func (n *networks) add(network Network) error {
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	for _, name := range names {
		if _, found := n.networks[name]; found {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
	return nil
}

func (n *networks) replace(network Network) {
	if old, found := n.networks[network.GetName()]; found {
		for _, an := range old.GetAlternativeNames() {
			delete(n.networks, an)
		}
	}
	n.networks[network.GetName()] = network
	for _, an := range network.GetAlternativeNames() {
		n.networks[an] = network
	}
	n.networksByID[network.GetChainID()] = network
}

func GetSupportedNetworks() []Network {
	seen := map[string]bool{}
	res := []Network{}
	for _, n := range globalSupportedNetworks.networks {
		if seen[n.GetName()] {
			continue
		}
		seen[n.GetName()] = true
		res = append(res, n)
	}
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}
