package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/deployments"
)

var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "List the contracts recorded on a network",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, network, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if network.IsInProcess() {
			fmt.Fprintf(out, "%s is an in-process network, nothing is kept between runs.\n", network.GetName())
			return nil
		}
		store, err := deployments.NewFileStore(settings.Paths.Deployments, network.GetName(), network.GetChainID())
		if err != nil {
			return err
		}
		all, err := store.All()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Fprintf(out, "No deployments on %s yet.\n", network.GetName())
			return nil
		}

		table := tablewriter.NewWriter(terminal(cmd).Indent().Writer())
		table.Header("Name", "Address", "Tx", "Block", "Gas used", "Deployments", "Deployed at")
		for _, name := range deployments.Names(all) {
			d := all[name]
			err := table.Append([]string{
				name,
				d.Address.Hex(),
				d.TransactionHash.Hex(),
				fmt.Sprint(d.BlockNumber),
				fmt.Sprint(d.GasUsed),
				fmt.Sprint(d.NumDeployments),
				d.DeployedAt.Format("2006-01-02 15:04:05"),
			})
			if err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(deploymentsCmd)
}
