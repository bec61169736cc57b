package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/networks"
)

// readNetwork parses a network config given inline as json or as the path
// of a json file.
func readNetwork(input string) (networks.Network, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("--file is required")
	}
	if strings.HasPrefix(input, "{") && strings.HasSuffix(input, "}") {
		n, err := networks.NewNetworkFromJSON([]byte(input))
		if err != nil {
			return nil, fmt.Errorf("the provided json is not valid: %w", err)
		}
		return n, nil
	}
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the provided json file: %w", err)
	}
	n, err := networks.NewNetworkFromJSON(content)
	if err != nil {
		return nil, fmt.Errorf("the provided json is not a valid network config: %w", err)
	}
	return n, nil
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--file takes a network config json filepath OR a json string. The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 12,
		"block_confirmations": 6,
		"node_variable_name": "NETWORK_NAME_RPC_URL",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"block_explorer_api_key_variable_name": "ETHERSCAN_API_KEY",
		"block_explorer_api_url": "https://api.etherscan.io/v2",
		"eth_usd_price_feed": "0x0000000000000000000000000000000000000000"
	}
eth_usd_price_feed is required to deploy FundMe on a network that is not a development chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		newNetwork, err := readNetwork(config.NetworkFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		names := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range names {
			if _, err := networks.GetNetwork(name); err != nil {
				continue
			}
			if !config.NetworkForce {
				return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
			}
			fmt.Fprintf(out, "Network with name %s already exists. We will replace it with the new network.\n", name)
		}

		if err := networks.AddNetwork(newNetwork); err != nil {
			return fmt.Errorf("failed to add the new network: %w", err)
		}
		fmt.Fprintf(out, "Network %s with chain ID %d added and saved to %s.\n",
			newNetwork.GetName(), newNetwork.GetChainID(), networks.CustomNetworksDir())
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(config.ConfigFile)
		if err != nil {
			return err
		}
		all := networks.GetSupportedNetworks()
		sort.Slice(all, func(i, j int) bool {
			return all[i].GetChainID() < all[j].GetChainID()
		})

		rows := [][]string{}
		for _, n := range all {
			feed := "mock"
			if !networks.IsDevelopmentChain(n.GetName(), settings.DevelopmentChains) {
				feed = "-"
				if addr, err := networks.PriceFeedForChain(n.GetChainID()); err == nil {
					feed = addr.Hex()
				}
			}
			node := "in-process"
			if !n.IsInProcess() {
				node = n.GetNodeVariableName()
			}
			rows = append(rows, []string{
				n.GetName(),
				fmt.Sprint(n.GetChainID()),
				strings.Join(n.GetAlternativeNames(), ", "),
				node,
				feed,
			})
		}
		u := terminal(cmd)
		u.Table([]string{"Name", "Chain ID", "Aliases", "Node", "ETH/USD feed"}, rows)
		u.Info("To add a network: fundme network add --file <json>")
		u.Info("To delete one, remove its json file in %s", networks.CustomNetworksDir())
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage all networks that fundme supports",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&config.NetworkFile, "file", "f", "", "path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVar(&config.NetworkForce, "force", false, "replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
