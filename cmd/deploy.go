package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/deployer"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/ui"
)

// resetDeployments forgets the records of the selected network. Records of
// live networks are only removed once the user agrees.
func resetDeployments(u ui.UI) error {
	settings, network, err := loadSettings()
	if err != nil {
		return err
	}
	if network.IsInProcess() {
		return nil
	}
	dir := filepath.Join(settings.Paths.Deployments, network.GetName())
	live := !networks.IsDevelopmentChain(network.GetName(), settings.DevelopmentChains)
	if live && !config.Yes && !u.Confirm(fmt.Sprintf("Forget every deployment recorded in %s?", dir), false) {
		return fmt.Errorf("reset of %s aborted", network.GetName())
	}
	return deployments.RemoveNetwork(settings.Paths.Deployments, network.GetName())
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run the deploy scripts against a network",
	Long: `Runs, in order, every deploy script carrying one of the given tags:
	00-deploy-mocks    tags: all, mocks   (development networks only)
	01-deploy-fund-me  tags: all, fundme

Deployments are recorded under deployments/<network>/ and reused by fund and
withdraw. --reset forgets the records of the network first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u := terminal(cmd)
		if config.Reset {
			if err := resetDeployments(u); err != nil {
				return err
			}
		}
		s, err := newSession(ctx, u)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.deployer.Run(ctx, deployer.Scripts, config.Tags...); err != nil {
			return err
		}
		return s.renderGasReport(ctx)
	},
}

func init() {
	deployCmd.Flags().StringSliceVarP(&config.Tags, "tags", "t", []string{deployer.TagAll}, "only run the deploy scripts carrying one of these tags")
	deployCmd.Flags().BoolVar(&config.Reset, "reset", false, "forget the deployments of the network before deploying")
	deployCmd.Flags().BoolVarP(&config.Yes, "yes", "y", false, "don't ask before forgetting the deployments of a live network")
	rootCmd.AddCommand(deployCmd)
}
