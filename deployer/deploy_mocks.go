package deployer

import (
	"context"

	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/networks"
)

// DeployMocks deploys the price feed mock on development networks and does
// nothing elsewhere.
func DeployMocks(ctx context.Context, f Framework) error {
	rt := f.Runtime()
	if !rt.IsDevelopment() {
		return nil
	}
	rt.UI.Info("Local network detected! Deploying mocks...")
	_, err := f.Deploy(ctx, contracts.MockV3AggregatorName, DeployOptions{
		From: "deployer",
		Args: []any{networks.DECIMALS, networks.INITIAL_ANSWER},
		Log:  true,
	})
	if err != nil {
		return err
	}
	rt.UI.Info("Mocks deployed!")
	rt.UI.Info("------------------------------------------------")
	return nil
}
