package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/networks"
)

// settingsRows is what "config show" prints, secrets masked.
func settingsRows(settings *config.Settings, network networks.Network) [][2]string {
	file := settings.File()
	if file == "" {
		file = "(none, using defaults)"
	}
	rpc, err := settings.RPCURL(network)
	switch {
	case err != nil:
		rpc = err.Error()
	case network.IsInProcess():
		rpc = "in-process"
	}

	roles := []string{}
	for role, index := range settings.NamedAccounts {
		roles = append(roles, fmt.Sprintf("%s=%d", role, index))
	}
	sort.Strings(roles)
	return [][2]string{
		{"Config file", file},
		{"Network", fmt.Sprintf("%s (chain %d)", network.GetName(), network.GetChainID())},
		{"Node", rpc},
		{"Block confirmations", fmt.Sprint(settings.BlockConfirmations(network))},
		{"Development chains", strings.Join(settings.DevelopmentChains, ", ")},
		{"Compilers", strings.Join(settings.CompilerVersions(), ", ")},
		{"Named accounts", strings.Join(roles, ", ")},
		{"Accounts", fmt.Sprint(len(settings.AccountKeys(network)))},
		{"Artifacts", settings.Paths.Artifacts},
		{"Deployments", settings.Paths.Deployments},
		{"Gas reporter", fmt.Sprintf("enabled=%t currency=%s", settings.GasReporter.Enabled, settings.GasReporter.Currency)},
		{"PRIVATE_KEY", config.Mask(settings.PrivateKey)},
		{"ETHERSCAN_API_KEY", config.Mask(settings.EtherscanAPIKey)},
		{"COINMARKETCAP_API_KEY", config.Mask(settings.GasReporter.CoinMarketCap)},
	}
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the settings a command would run with",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, network, err := loadSettings()
		if err != nil {
			return err
		}
		u := terminal(cmd)
		u.KeyValue(settingsRows(settings, network))
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fundme.yaml with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigFile
		if path == "" {
			path = config.DefaultConfigName + ".yaml"
		}
		err := config.WriteDefault(path, config.ForceInit)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w, use --force to overwrite it", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the project configuration",
	Long:  ``,
}

func init() {
	initConfigCmd.Flags().BoolVar(&config.ForceInit, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(configCmd)
}
