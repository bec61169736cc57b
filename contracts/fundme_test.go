package contracts_test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/tranvictor/fundme/artifacts"
	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/deployer"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/ui"
	"github.com/tranvictor/fundme/util/account"
	"github.com/tranvictor/fundme/util/devchain"
)

var oneEther = big.NewInt(params.Ether)

var _ = Describe("FundMe", func() {
	var (
		ctx      context.Context
		chain    *devchain.Chain
		client   *devchain.Client
		d        *deployer.Deployer
		accounts *account.NamedAccounts
		owner    *account.Account
		fundMe   *contracts.FundMe
		mock     *contracts.MockV3Aggregator
	)

	opts := func(acc *account.Account, value *big.Int) *bind.TransactOpts {
		o, err := acc.TransactOpts(ctx, big.NewInt(int64(devchain.ChainID)))
		Expect(err).NotTo(HaveOccurred())
		o.Value = value
		return o
	}

	confirm := func(method string, tx *types.Transaction, err error) *types.Receipt {
		Expect(err).NotTo(HaveOccurred())
		receipt, err := d.Confirm(ctx, contracts.FundMeName, method, tx, 1)
		Expect(err).NotTo(HaveOccurred())
		return receipt
	}

	balance := func(addr common.Address) *big.Int {
		b, err := client.BalanceAt(ctx, addr, nil)
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	gasCost := func(r *types.Receipt) *big.Int {
		return new(big.Int).Mul(new(big.Int).SetUint64(r.GasUsed), r.EffectiveGasPrice)
	}

	BeforeEach(func() {
		if artifactsDir == "" {
			Skip("FUNDME_ARTIFACTS is not set")
		}
		ctx = context.Background()
		accounts = account.DevNamedAccounts(nil)
		var funded []common.Address
		for _, acc := range accounts.All() {
			funded = append(funded, acc.Address())
		}
		chain = devchain.New(funded, nil)
		DeferCleanup(chain.Close)
		client = chain.Client()

		d = deployer.NewDeployer(&deployer.Runtime{
			Network:     networks.Hardhat,
			Backend:     client,
			Deployments: deployments.NewMemoryStore("hardhat"),
			Artifacts:   artifacts.NewStore(artifactsDir),
			Accounts:    accounts,
			UI:          ui.NewRecordingUI(),
			Log:         zap.NewNop(),
		})
		Expect(d.Fixture(ctx, deployer.TagAll)).To(Succeed())

		var err error
		owner, err = accounts.Named("deployer")
		Expect(err).NotTo(HaveOccurred())

		record, err := d.Get(contracts.FundMeName)
		Expect(err).NotTo(HaveOccurred())
		fundMe, err = contracts.NewFundMeFromDeployment(record, client)
		Expect(err).NotTo(HaveOccurred())

		record, err = d.Get(contracts.MockV3AggregatorName)
		Expect(err).NotTo(HaveOccurred())
		mock, err = contracts.NewMockV3AggregatorFromDeployment(record, client)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("constructor", func() {
		It("sets the aggregator address correctly", func() {
			Expect(fundMe.GetPriceFeed(ctx)).To(Equal(mock.Address()))
		})

		It("makes the deployer the owner", func() {
			Expect(fundMe.GetOwner(ctx)).To(Equal(owner.Address()))
		})
	})

	Describe("mock price feed", func() {
		It("answers the initial price with 8 decimals", func() {
			Expect(mock.Decimals(ctx)).To(Equal(networks.DECIMALS))
			round, err := mock.LatestRoundData(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(round.Answer.String()).To(Equal(networks.INITIAL_ANSWER.String()))
		})

		It("lets the price be moved", func() {
			tx, err := mock.UpdateAnswer(opts(owner, nil), big.NewInt(100000000000))
			confirm("updateAnswer", tx, err)
			Expect(mock.LatestAnswer(ctx)).To(Equal(big.NewInt(100000000000)))
		})
	})

	Describe("fund", func() {
		It("fails if you don't send enough ETH", func() {
			_, err := fundMe.Fund(opts(owner, nil))
			revert, ok := contracts.AsRevert(err)
			Expect(ok).To(BeTrue(), "got %v", err)
			Expect(revert.Reason).To(Equal(contracts.ReasonSpendMoreETH))
		})

		It("updates the amount funded data structure", func() {
			tx, err := fundMe.Fund(opts(owner, oneEther))
			confirm("fund", tx, err)
			Expect(fundMe.GetAddressToAmountFunded(ctx, owner.Address())).To(Equal(oneEther))
		})

		It("adds funder to array of funders", func() {
			tx, err := fundMe.Fund(opts(owner, oneEther))
			confirm("fund", tx, err)
			Expect(fundMe.GetFunder(ctx, big.NewInt(0))).To(Equal(owner.Address()))
		})
	})

	withdrawals := []struct {
		method string
		send   func(*bind.TransactOpts) (*types.Transaction, error)
	}{
		{"withdraw", func(o *bind.TransactOpts) (*types.Transaction, error) { return fundMe.Withdraw(o) }},
		{"cheaperWithdraw", func(o *bind.TransactOpts) (*types.Transaction, error) { return fundMe.CheaperWithdraw(o) }},
	}
	for _, w := range withdrawals {
		method, withdraw := w.method, w.send
		Describe(method, func() {
			BeforeEach(func() {
				tx, err := fundMe.Fund(opts(owner, oneEther))
				confirm("fund", tx, err)
			})

			It("withdraws ETH from a single funder", func() {
				startingFundMeBalance, err := fundMe.Balance(ctx)
				Expect(err).NotTo(HaveOccurred())
				startingDeployerBalance := balance(owner.Address())

				tx, err := withdraw(opts(owner, nil))
				receipt := confirm(method, tx, err)

				endingFundMeBalance, err := fundMe.Balance(ctx)
				Expect(err).NotTo(HaveOccurred())
				endingDeployerBalance := balance(owner.Address())

				Expect(endingFundMeBalance.Sign()).To(BeZero())
				Expect(new(big.Int).Add(startingFundMeBalance, startingDeployerBalance).String()).To(
					Equal(new(big.Int).Add(endingDeployerBalance, gasCost(receipt)).String()),
				)
			})

			It("allows us to withdraw with multiple funders", func() {
				funders := accounts.All()[1:6]
				for _, funder := range funders {
					tx, err := fundMe.Fund(opts(funder, oneEther))
					confirm("fund", tx, err)
				}
				startingFundMeBalance, err := fundMe.Balance(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(startingFundMeBalance.String()).To(Equal(new(big.Int).Mul(oneEther, big.NewInt(6)).String()))
				startingDeployerBalance := balance(owner.Address())

				tx, err := withdraw(opts(owner, nil))
				receipt := confirm(method, tx, err)

				endingFundMeBalance, err := fundMe.Balance(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(endingFundMeBalance.Sign()).To(BeZero())
				Expect(new(big.Int).Add(startingFundMeBalance, startingDeployerBalance).String()).To(
					Equal(new(big.Int).Add(balance(owner.Address()), gasCost(receipt)).String()),
				)

				_, err = fundMe.GetFunder(ctx, big.NewInt(0))
				revert, ok := contracts.AsRevert(err)
				Expect(ok).To(BeTrue(), "got %v", err)
				Expect(revert.Name).To(Equal("Panic"))

				for _, funder := range append(funders, owner) {
					amount, err := fundMe.GetAddressToAmountFunded(ctx, funder.Address())
					Expect(err).NotTo(HaveOccurred())
					Expect(amount.Sign()).To(BeZero())
				}
			})

			It("only allows the owner to withdraw", func() {
				attacker, err := accounts.Named("user")
				Expect(err).NotTo(HaveOccurred())

				_, err = withdraw(opts(attacker, nil))
				revert, ok := contracts.AsRevert(err)
				Expect(ok).To(BeTrue(), "got %v", err)
				Expect(revert.Name).To(Equal(contracts.ErrNameNotOwner))

				stillFunded, err := fundMe.Balance(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stillFunded.String()).To(Equal(oneEther.String()))
			})
		})
	}
})
