package gasreport

import (
	"context"
	"math/big"

	"github.com/tranvictor/fundme/common"
)

// GasPriceSource returns the gas price, in wei, used to price reported gas.
type GasPriceSource interface {
	GasPrice(ctx context.Context) (*big.Int, error)
}

// GasPriceFunc adapts a node client's SuggestGasPrice.
type GasPriceFunc func(ctx context.Context) (*big.Int, error)

func (f GasPriceFunc) GasPrice(ctx context.Context) (*big.Int, error) {
	return f(ctx)
}

type gweiOracle interface {
	RecommendedGasPrice(ctx context.Context) (float64, error)
}

// ExplorerGasPrice reads the gas price from an explorer's gas oracle,
// which answers in gwei.
type ExplorerGasPrice struct {
	Oracle gweiOracle
}

func (e ExplorerGasPrice) GasPrice(ctx context.Context) (*big.Int, error) {
	gwei, err := e.Oracle.RecommendedGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	return common.GweiToWei(gwei), nil
}
