// Package deployer deploys contracts from their compiled artifacts, keeps
// the deployment records and runs the tagged deploy scripts.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/tranvictor/fundme/artifacts"
	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/ui"
	"github.com/tranvictor/fundme/util/account"
	"github.com/tranvictor/fundme/util/gasreport"
	"github.com/tranvictor/fundme/util/logging"
	"github.com/tranvictor/fundme/util/monitor"
)

// Backend is the node client deployments go through.
type Backend interface {
	contracts.Backend
	BlockNumber(ctx context.Context) (uint64, error)
}

type ArtifactSource interface {
	Get(name string) (*artifacts.Artifact, error)
	BuildInfo(a *artifacts.Artifact) (*artifacts.BuildInfo, error)
}

// Runtime is the environment deploy scripts run in: one network, its
// records and the accounts allowed to sign.
type Runtime struct {
	Network networks.Network
	// Confirmations overrides the network's confirmation depth when set.
	Confirmations uint64
	Backend       Backend
	ChainID       *big.Int
	Deployments   deployments.Store
	Artifacts     ArtifactSource
	Accounts      *account.NamedAccounts
	// Verifier is nil when the network has no explorer.
	Verifier          Verifier
	EtherscanAPIKey   string
	DevelopmentChains []string
	UI                ui.UI
	Log               *zap.Logger
	Reporter          *gasreport.Reporter
	Monitor           *monitor.TxMonitor
}

// IsDevelopment reports whether the runtime's network gets mocks.
func (rt *Runtime) IsDevelopment() bool {
	return networks.IsDevelopmentChain(rt.Network.GetName(), rt.DevelopmentChains)
}

func (rt *Runtime) BlockConfirmations() uint64 {
	if rt.Confirmations > 0 {
		return rt.Confirmations
	}
	if confs := rt.Network.GetBlockConfirmations(); confs > 0 {
		return confs
	}
	return 1
}

type DeployOptions struct {
	// From is a named account or an address of one of the configured
	// accounts. Defaults to "deployer".
	From string
	// Contract is the artifact to deploy when it differs from the
	// deployment name.
	Contract          string
	Args              []any
	Value             *big.Int
	Log               bool
	WaitConfirmations uint64
}

// Framework is what deploy scripts are given.
type Framework interface {
	Deploy(ctx context.Context, name string, opts DeployOptions) (*deployments.Deployment, error)
	Get(name string) (*deployments.Deployment, error)
	Runtime() *Runtime
}

type Deployer struct {
	rt      *Runtime
	log     *zap.Logger
	monitor *monitor.TxMonitor
}

func NewDeployer(rt *Runtime) *Deployer {
	if rt.UI == nil {
		rt.UI = ui.NewTerminalUI()
	}
	rt.Log = logging.OrNop(rt.Log)
	if rt.ChainID == nil {
		rt.ChainID = new(big.Int).SetUint64(rt.Network.GetChainID())
	}
	m := rt.Monitor
	if m == nil {
		interval := rt.Network.GetBlockTime() / 4
		if interval <= 0 {
			interval = 100 * time.Millisecond
		}
		m = monitor.NewTxMonitor(rt.Backend, monitor.WithInterval(interval), monitor.WithLogger(rt.Log))
	}
	return &Deployer{
		rt:      rt,
		log:     rt.Log.With(zap.String("network", rt.Network.GetName())),
		monitor: m,
	}
}

func (d *Deployer) Runtime() *Runtime {
	return d.rt
}

func (d *Deployer) Get(name string) (*deployments.Deployment, error) {
	return d.rt.Deployments.Get(name)
}

func (d *Deployer) account(from string) (*account.Account, error) {
	if from == "" {
		from = "deployer"
	}
	if common.IsHexAddress(from) {
		addr := common.HexToAddress(from)
		for _, acc := range d.rt.Accounts.All() {
			if acc.Address() == addr {
				return acc, nil
			}
		}
		return nil, fmt.Errorf("no private key configured for %s", addr.Hex())
	}
	return d.rt.Accounts.Named(from)
}

// Deploy sends the creation transaction of the artifact, waits for it and
// saves the record under name.
func (d *Deployer) Deploy(ctx context.Context, name string, opts DeployOptions) (*deployments.Deployment, error) {
	contractName := opts.Contract
	if contractName == "" {
		contractName = name
	}
	artifact, err := d.rt.Artifacts.Get(contractName)
	if err != nil {
		return nil, err
	}
	if len(artifact.Bytecode) == 0 {
		return nil, fmt.Errorf("%s has no bytecode, it is abstract or an interface", contractName)
	}
	acc, err := d.account(opts.From)
	if err != nil {
		return nil, err
	}
	encodedArgs, err := artifact.ABI.Pack("", opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("constructor arguments of %s: %w", contractName, err)
	}
	txOpts, err := acc.TransactOpts(ctx, d.rt.ChainID)
	if err != nil {
		return nil, err
	}
	txOpts.Value = opts.Value

	address, tx, _, err := bind.DeployContract(txOpts, artifact.ABI, artifact.Bytecode, d.rt.Backend, opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't deploy %s: %w", name, err)
	}
	d.log.Debug("deployment sent",
		zap.String("contract", name),
		zap.Stringer("tx", tx.Hash()),
		zap.Stringer("from", acc.Address()),
	)

	confirmations := opts.WaitConfirmations
	if confirmations == 0 {
		confirmations = 1
	}
	stop := func() {}
	if opts.Log {
		stop = d.rt.UI.Spinner(fmt.Sprintf("deploying %q (tx: %s)...", name, tx.Hash().Hex()))
	}
	receipt, err := d.monitor.WaitConfirmations(ctx, tx.Hash(), confirmations)
	stop()
	if err != nil {
		return nil, fmt.Errorf("deploying %s: %w", name, err)
	}

	numDeployments := 1
	previous, err := d.rt.Deployments.Get(name)
	switch {
	case err == nil:
		numDeployments = previous.NumDeployments + 1
	case !errors.Is(err, deployments.ErrNotFound):
		return nil, err
	}

	args := make([]string, 0, len(opts.Args))
	for _, arg := range opts.Args {
		args = append(args, fmt.Sprint(arg))
	}
	solcVersion := ""
	if info, err := d.rt.Artifacts.BuildInfo(artifact); err == nil {
		solcVersion = info.SolcLongVersion
	}
	record := &deployments.Deployment{
		Address:         address,
		ABI:             artifact.RawABI,
		TransactionHash: tx.Hash(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		Deployer:        acc.Address(),
		Args:            args,
		ConstructorArgs: encodedArgs,
		SolcVersion:     solcVersion,
		NumDeployments:  numDeployments,
		DeployedAt:      time.Now().UTC(),
	}
	if err := d.rt.Deployments.Save(name, record); err != nil {
		return nil, fmt.Errorf("couldn't save deployment of %s: %w", name, err)
	}
	d.rt.Reporter.Record(name, gasreport.DeploymentMethod, receipt.GasUsed)

	d.log.Debug("deployed",
		zap.String("contract", name),
		zap.Stringer("address", address),
		zap.Uint64("gas", receipt.GasUsed),
		zap.Int("numDeployments", numDeployments),
	)
	if opts.Log {
		d.rt.UI.Info(
			"deploying %q (tx: %s)...: deployed at %s with %d gas",
			name, tx.Hash().Hex(), address.Hex(), receipt.GasUsed,
		)
	}
	return record, nil
}

// Confirm waits for a contract call and records its gas under contract
// and method.
func (d *Deployer) Confirm(ctx context.Context, contract, method string, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	receipt, err := d.monitor.WaitConfirmations(ctx, tx.Hash(), confirmations)
	if receipt != nil {
		d.rt.Reporter.Record(contract, method, receipt.GasUsed)
	}
	if err != nil {
		return receipt, fmt.Errorf("%s.%s: %w", contract, method, err)
	}
	return receipt, nil
}

// Fixture forgets the network's records and runs the scripts carrying
// tags, giving every test the same starting point.
func (d *Deployer) Fixture(ctx context.Context, tags ...string) error {
	if err := d.rt.Deployments.Reset(); err != nil {
		return err
	}
	return d.Run(ctx, Scripts, tags...)
}

// Run runs, in order, every script carrying one of tags. No tags means
// "all".
func (d *Deployer) Run(ctx context.Context, scripts []Script, tags ...string) error {
	selected := SelectScripts(scripts, tags...)
	if len(selected) == 0 {
		return fmt.Errorf("no deploy script is tagged %s", strings.Join(tags, ", "))
	}
	for _, s := range selected {
		d.log.Debug("running deploy script", zap.String("script", s.Name))
		if err := s.Run(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}
