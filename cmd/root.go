// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundme",
	Short: "Deploy the FundMe contract and interact with it",
	Long: `fundme deploys the FundMe crowdfunding contract together with the price
feed it needs, and lets you fund it and withdraw from it.

On development networks (hardhat, localhost by default) a MockV3Aggregator is
deployed first and FundMe reads its price from it. On live networks the
Chainlink ETH/USD feed of the chain is used and, when ETHERSCAN_API_KEY is set,
the contract source is verified on the explorer after deployment.

Settings are read from fundme.yaml in the working directory (see "fundme config
init"), then from the environment:
	PRIVATE_KEY            key of the deployer account on live networks
	ETHERSCAN_API_KEY      enables source verification
	COINMARKETCAP_API_KEY  prices the gas report in fiat
	REPORT_GAS             enables the gas report
	<NETWORK>_RPC_URL      node of a network, e.g. SEPOLIA_RPC_URL

Records of deployed contracts are kept under deployments/<network>/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("Error: %s", err)))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "", "network to use, defaults to defaultNetwork of the config. See \"fundme network list\".")
	rootCmd.PersistentFlags().StringVarP(&config.ConfigFile, "config", "c", "", "config file, defaults to ./fundme.yaml")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "print debug logs")
}
