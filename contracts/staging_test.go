package contracts_test

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/util/account"
	"github.com/tranvictor/fundme/util/monitor"
)

// The staging suite runs against a FundMe already deployed on a live
// network:
//
//	FUNDME_STAGING_NETWORK=sepolia SEPOLIA_RPC_URL=... PRIVATE_KEY=... go test ./contracts -ginkgo.label-filter=staging
var _ = Describe("FundMe staging", Label("staging"), func() {
	var (
		ctx     context.Context
		client  *ethclient.Client
		owner   *account.Account
		chainID *big.Int
		fundMe  *contracts.FundMe
		waiter  *monitor.TxMonitor
	)

	BeforeEach(func() {
		name := os.Getenv("FUNDME_STAGING_NETWORK")
		if name == "" {
			Skip("FUNDME_STAGING_NETWORK is not set")
		}
		network, err := networks.GetNetwork(name)
		Expect(err).NotTo(HaveOccurred())
		if networks.IsDevelopmentChain(network.GetName(), nil) {
			Skip("staging tests only run on live networks")
		}
		rpcURL := os.Getenv(network.GetNodeVariableName())
		Expect(rpcURL).NotTo(BeEmpty(), "%s is not set", network.GetNodeVariableName())

		ctx = context.Background()
		client, err = ethclient.DialContext(ctx, rpcURL)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		owner, err = account.NewPrivateKeyAccount(os.Getenv("PRIVATE_KEY"))
		Expect(err).NotTo(HaveOccurred())
		chainID = new(big.Int).SetUint64(network.GetChainID())

		root := os.Getenv("FUNDME_DEPLOYMENTS")
		if root == "" {
			root = filepath.Join("..", "deployments")
		}
		store, err := deployments.NewFileStore(root, network.GetName(), network.GetChainID())
		Expect(err).NotTo(HaveOccurred())
		record, err := store.Get(contracts.FundMeName)
		Expect(err).NotTo(HaveOccurred())
		fundMe, err = contracts.NewFundMeFromDeployment(record, client)
		Expect(err).NotTo(HaveOccurred())

		waiter = monitor.NewTxMonitor(client, monitor.WithInterval(network.GetBlockTime()))
	})

	It("allows people to fund and withdraw", func() {
		sendValue := new(big.Int).Div(big.NewInt(params.Ether), big.NewInt(10))

		opts, err := owner.TransactOpts(ctx, chainID)
		Expect(err).NotTo(HaveOccurred())
		opts.Value = sendValue
		tx, err := fundMe.Fund(opts)
		Expect(err).NotTo(HaveOccurred())
		_, err = waiter.WaitConfirmations(ctx, tx.Hash(), 1)
		Expect(err).NotTo(HaveOccurred())

		opts, err = owner.TransactOpts(ctx, chainID)
		Expect(err).NotTo(HaveOccurred())
		tx, err = fundMe.Withdraw(opts)
		Expect(err).NotTo(HaveOccurred())
		_, err = waiter.WaitConfirmations(ctx, tx.Hash(), 1)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() (*big.Int, error) {
			return fundMe.Balance(ctx)
		}).WithTimeout(time.Minute).Should(WithTransform(func(b *big.Int) int { return b.Sign() }, BeZero()))
	})
})
