// Package contracts binds the FundMe contract and its price feed mock.
package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/fundme/deployments"
)

// Backend is everything the bindings need from a node.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Contract is a deployed contract reached through its abi. Calls and
// transactions that revert fail with a *RevertError.
type Contract struct {
	address common.Address
	abi     abi.ABI
	backend Backend
	bound   *bind.BoundContract
}

func NewContract(address common.Address, contractABI abi.ABI, backend Backend) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
		backend: backend,
		bound:   bind.NewBoundContract(address, contractABI, backend, backend, backend),
	}
}

// NewContractFromDeployment binds the contract a deployment record
// describes.
func NewContractFromDeployment(d *deployments.Deployment, backend Backend) (*Contract, error) {
	parsed, err := d.ParsedABI()
	if err != nil {
		return nil, err
	}
	return NewContract(d.Address, parsed, backend), nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Balance is the native token balance of the contract.
func (c *Contract) Balance(ctx context.Context) (*big.Int, error) {
	return c.backend.BalanceAt(ctx, c.address, nil)
}

func (c *Contract) wrapError(method string, err error) error {
	data, isRevert := revertData(err)
	if !isRevert {
		return fmt.Errorf("%s: %w", method, err)
	}
	return decodeRevert(c.abi, method, data)
}

// Call runs a read only method and returns its unpacked outputs.
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	output, err := c.backend.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: input,
	}, nil)
	if err != nil {
		return nil, c.wrapError(method, err)
	}
	return c.abi.Unpack(method, output)
}

// Transact estimates, signs and sends a state changing call. The gas
// estimation is done here rather than by the bound contract so reverts
// keep their data.
func (c *Contract) Transact(opts *bind.TransactOpts, method string, args ...any) (*types.Transaction, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	sendOpts := *opts
	if sendOpts.GasLimit == 0 {
		gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:  opts.From,
			To:    &c.address,
			Value: opts.Value,
			Data:  input,
		})
		if err != nil {
			return nil, c.wrapError(method, err)
		}
		sendOpts.GasLimit = gas
	}
	tx, err := c.bound.Transact(&sendOpts, method, args...)
	if err != nil {
		return nil, c.wrapError(method, err)
	}
	return tx, nil
}

func one[T any](out []any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("expected one output, got %d", len(out))
	}
	v, ok := out[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected output type %T", out[0])
	}
	return v, nil
}
