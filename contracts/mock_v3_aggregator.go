package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/fundme/deployments"
)

const MockV3AggregatorName = "MockV3Aggregator"

// MockV3Aggregator is the price feed stand in of development chains.
type MockV3Aggregator struct {
	*Contract
}

func NewMockV3Aggregator(address common.Address, contractABI abi.ABI, backend Backend) *MockV3Aggregator {
	return &MockV3Aggregator{NewContract(address, contractABI, backend)}
}

func NewMockV3AggregatorFromDeployment(d *deployments.Deployment, backend Backend) (*MockV3Aggregator, error) {
	c, err := NewContractFromDeployment(d, backend)
	if err != nil {
		return nil, err
	}
	return &MockV3Aggregator{c}, nil
}

func (m *MockV3Aggregator) Decimals(ctx context.Context) (uint8, error) {
	return one[uint8](m.Call(ctx, "decimals"))
}

func (m *MockV3Aggregator) LatestAnswer(ctx context.Context) (*big.Int, error) {
	return one[*big.Int](m.Call(ctx, "latestAnswer"))
}

func (m *MockV3Aggregator) Version(ctx context.Context) (*big.Int, error) {
	return one[*big.Int](m.Call(ctx, "version"))
}

type RoundData struct {
	RoundID         *big.Int
	Answer          *big.Int
	StartedAt       *big.Int
	UpdatedAt       *big.Int
	AnsweredInRound *big.Int
}

func (m *MockV3Aggregator) LatestRoundData(ctx context.Context) (RoundData, error) {
	out, err := m.Call(ctx, "latestRoundData")
	if err != nil {
		return RoundData{}, err
	}
	if len(out) != 5 {
		return RoundData{}, fmt.Errorf("latestRoundData returned %d values", len(out))
	}
	fields := make([]*big.Int, 0, len(out))
	for _, v := range out {
		n, ok := v.(*big.Int)
		if !ok {
			return RoundData{}, fmt.Errorf("unexpected round data type %T", v)
		}
		fields = append(fields, n)
	}
	return RoundData{
		RoundID:         fields[0],
		Answer:          fields[1],
		StartedAt:       fields[2],
		UpdatedAt:       fields[3],
		AnsweredInRound: fields[4],
	}, nil
}

func (m *MockV3Aggregator) UpdateAnswer(opts *bind.TransactOpts, answer *big.Int) (*types.Transaction, error) {
	return m.Transact(opts, "updateAnswer", answer)
}
