package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/contracts"
)

func withdraw(ctx context.Context, s *session, cheaper bool) error {
	fundMe, err := deployedFundMe(s)
	if err != nil {
		return err
	}
	deployerAccount, err := s.rt.Accounts.Named("deployer")
	if err != nil {
		return err
	}
	opts, err := deployerAccount.TransactOpts(ctx, s.rt.ChainID)
	if err != nil {
		return err
	}

	method := "withdraw"
	send := fundMe.Withdraw
	if cheaper {
		method = "cheaperWithdraw"
		send = fundMe.CheaperWithdraw
	}
	s.ui.Info("Withdrawing from contract...")
	tx, err := send(opts)
	if err != nil {
		return err
	}
	if _, err := s.deployer.Confirm(ctx, contracts.FundMeName, method, tx, 1); err != nil {
		return err
	}
	s.ui.Success("Got it back!")
	return nil
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw every funded ETH to the owner",
	Long: `Withdraws the balance of FundMe to its owner and clears the funders.
Only the deploying account can withdraw, any other one is reverted with
FundMe__NotOwner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx, terminal(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ensureDeployed(ctx); err != nil {
			return err
		}
		if err := withdraw(ctx, s, config.Cheaper); err != nil {
			return err
		}
		return s.renderGasReport(ctx)
	},
}

func init() {
	withdrawCmd.Flags().BoolVar(&config.Cheaper, "cheaper", false, "use cheaperWithdraw, which reads the funders from memory")
	rootCmd.AddCommand(withdrawCmd)
}
