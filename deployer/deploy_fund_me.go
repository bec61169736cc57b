package deployer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/util/explorers"
)

// DeployFundMe deploys FundMe with the price feed of the network and, on
// live networks with an explorer key, verifies it. Verification failures
// are reported and ignored.
func DeployFundMe(ctx context.Context, f Framework) error {
	rt := f.Runtime()
	priceFeed, err := ResolvePriceFeed(
		rt.Network.GetName(),
		rt.ChainID.Uint64(),
		rt.DevelopmentChains,
		f.Get,
	)
	if err != nil {
		return err
	}

	rt.UI.Info("Deploying FundMe and waiting for confirmations...")
	fundMe, err := f.Deploy(ctx, contracts.FundMeName, DeployOptions{
		From:              "deployer",
		Args:              []any{priceFeed},
		Log:               true,
		WaitConfirmations: rt.BlockConfirmations(),
	})
	if err != nil {
		return err
	}
	rt.UI.Critical("FundMe deployed at %s", fundMe.Address.Hex())
	rt.Log.Info("FundMe deployed",
		zap.Stringer("address", fundMe.Address),
		zap.Stringer("priceFeed", priceFeed),
	)

	if rt.IsDevelopment() || rt.EtherscanAPIKey == "" {
		return nil
	}
	if rt.Verifier == nil {
		rt.UI.Warn("%s has no block explorer configured, skipping verification", rt.Network.GetName())
		return nil
	}
	rt.UI.Info("Verifying contract...")
	err = rt.Verifier.Verify(ctx, VerifyInput{
		Name:       contracts.FundMeName,
		Address:    fundMe.Address,
		Args:       []any{priceFeed},
		Deployment: fundMe,
	})
	out := rt.UI.Indent()
	switch {
	case err == nil:
		out.Success("Verified!")
	case errors.Is(err, explorers.ErrAlreadyVerified):
		out.Success("Already verified!")
	default:
		out.Warn("Verification failed: %s", err)
		rt.Log.Warn("verification failed", zap.Stringer("address", fundMe.Address), zap.Error(err))
	}
	rt.UI.Info("------------------------------------------------")
	return nil
}
