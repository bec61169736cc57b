package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/fundme/common"
	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/contracts"
)

// deployedFundMe binds the FundMe recorded on the session's network.
func deployedFundMe(s *session) (*contracts.FundMe, error) {
	record, err := s.rt.Deployments.Get(contracts.FundMeName)
	if err != nil {
		return nil, fmt.Errorf("%w, run \"fundme deploy\" first", err)
	}
	return contracts.NewFundMeFromDeployment(record, s.rt.Backend)
}

func fund(ctx context.Context, s *session, value string) error {
	amount, err := common.FloatStringToBig(value, s.network.GetNativeTokenDecimal())
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", value, err)
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("value must be positive, got %s", value)
	}
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
	opts.Value = amount

	s.ui.Info("Funding contract...")
	tx, err := fundMe.Fund(opts)
	if err != nil {
		return err
	}
	if _, err := s.deployer.Confirm(ctx, contracts.FundMeName, "fund", tx, 1); err != nil {
		return err
	}
	s.ui.Success("Funded!")
	s.log.Debug("funded",
		zap.Stringer("tx", tx.Hash()),
		zap.String("value", common.BigToFloatString(amount, s.network.GetNativeTokenDecimal())),
	)
	return nil
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Send ETH to the deployed FundMe from the deployer account",
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
		if err := fund(ctx, s, config.FundValue); err != nil {
			return err
		}
		return s.renderGasReport(ctx)
	},
}

func init() {
	fundCmd.Flags().StringVar(&config.FundValue, "value", "0.1", "amount to send, in ETH")
	rootCmd.AddCommand(fundCmd)
}
