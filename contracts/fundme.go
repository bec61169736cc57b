package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/fundme/deployments"
)

const (
	FundMeName = "FundMe"

	// Revert reasons of FundMe.
	ReasonSpendMoreETH = "You need to spend more ETH!"
	ErrNameNotOwner    = "FundMe__NotOwner"
)

type FundMe struct {
	*Contract
}

func NewFundMe(address common.Address, contractABI abi.ABI, backend Backend) *FundMe {
	return &FundMe{NewContract(address, contractABI, backend)}
}

func NewFundMeFromDeployment(d *deployments.Deployment, backend Backend) (*FundMe, error) {
	c, err := NewContractFromDeployment(d, backend)
	if err != nil {
		return nil, err
	}
	return &FundMe{c}, nil
}

// Fund sends opts.Value to the contract. It reverts when the value is worth
// less than MINIMUM_USD.
func (f *FundMe) Fund(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.Transact(opts, "fund")
}

func (f *FundMe) Withdraw(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.Transact(opts, "withdraw")
}

// CheaperWithdraw is Withdraw reading the funders from memory instead of
// storage.
func (f *FundMe) CheaperWithdraw(opts *bind.TransactOpts) (*types.Transaction, error) {
	return f.Transact(opts, "cheaperWithdraw")
}

func (f *FundMe) GetOwner(ctx context.Context) (common.Address, error) {
	return one[common.Address](f.Call(ctx, "getOwner"))
}

func (f *FundMe) GetFunder(ctx context.Context, index *big.Int) (common.Address, error) {
	return one[common.Address](f.Call(ctx, "getFunder", index))
}

func (f *FundMe) GetAddressToAmountFunded(ctx context.Context, funder common.Address) (*big.Int, error) {
	return one[*big.Int](f.Call(ctx, "getAddressToAmountFunded", funder))
}

func (f *FundMe) GetPriceFeed(ctx context.Context) (common.Address, error) {
	return one[common.Address](f.Call(ctx, "getPriceFeed"))
}

func (f *FundMe) GetVersion(ctx context.Context) (*big.Int, error) {
	return one[*big.Int](f.Call(ctx, "getVersion"))
}

func (f *FundMe) MinimumUSD(ctx context.Context) (*big.Int, error) {
	return one[*big.Int](f.Call(ctx, "MINIMUM_USD"))
}
