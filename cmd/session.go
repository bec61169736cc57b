package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/fundme/artifacts"
	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/deployer"
	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/ui"
	"github.com/tranvictor/fundme/util/account"
	"github.com/tranvictor/fundme/util/devchain"
	"github.com/tranvictor/fundme/util/explorers"
	"github.com/tranvictor/fundme/util/gasreport"
	"github.com/tranvictor/fundme/util/logging"
)

// session is everything one command needs to talk to a network.
type session struct {
	settings *config.Settings
	network  networks.Network
	ui       ui.UI
	log      *zap.Logger
	rt       *deployer.Runtime
	deployer *deployer.Deployer
	close    func()
}

func terminal(cmd *cobra.Command) ui.UI {
	return ui.NewTerminalUIWithStreams(cmd.OutOrStdout(), cmd.InOrStdin())
}

// loadSettings reads the config and resolves the network the command runs
// against.
func loadSettings() (*config.Settings, networks.Network, error) {
	settings, err := config.Load(config.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	name := config.Network
	if name == "" {
		name = settings.DefaultNetwork
	}
	network, err := networks.GetNetwork(name)
	if err != nil {
		return nil, nil, err
	}
	return settings, network, nil
}

// newSession builds the runtime of the selected network. Output goes to u.
func newSession(ctx context.Context, u ui.UI) (*session, error) {
	settings, network, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log, err := logging.NewLogger(config.Verbose)
	if err != nil {
		return nil, fmt.Errorf("couldn't set up logging: %w", err)
	}
	log = log.With(zap.String("network", network.GetName()))

	accounts, err := account.NamedAccountsFromKeys(settings.AccountKeys(network), settings.NamedAccounts)
	if err != nil {
		return nil, err
	}

	s := &session{
		settings: settings,
		network:  network,
		ui:       u,
		log:      log,
		close:    func() {},
	}

	var (
		backend deployer.Backend
		store   deployments.Store
	)
	if network.IsInProcess() {
		funded := make([]common.Address, 0, len(accounts.All()))
		for _, acc := range accounts.All() {
			funded = append(funded, acc.Address())
		}
		chain := devchain.New(funded, devchain.DefaultBalance)
		backend = chain.Client()
		store = deployments.NewMemoryStore(network.GetName())
		s.close = func() { _ = chain.Close() }
		log.Debug("started in-process chain", zap.Int("accounts", len(funded)))
	} else {
		url, err := settings.RPCURL(network)
		if err != nil {
			return nil, err
		}
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("couldn't connect to %s: %w", network.GetName(), err)
		}
		chainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("couldn't get chain id of %s: %w", network.GetName(), err)
		}
		if chainID.Uint64() != network.GetChainID() {
			client.Close()
			return nil, fmt.Errorf(
				"node of %s is on chain %s, expected %d",
				network.GetName(), chainID, network.GetChainID(),
			)
		}
		fileStore, err := deployments.NewFileStore(settings.Paths.Deployments, network.GetName(), chainID.Uint64())
		if err != nil {
			client.Close()
			return nil, err
		}
		backend = client
		store = fileStore
		s.close = client.Close
		log.Debug("connected", zap.String("deployments", fileStore.Dir()))
	}

	artifactStore := artifacts.NewStore(settings.Paths.Artifacts)

	var (
		verifier deployer.Verifier
		gasPrice gasreport.GasPriceSource = gasreport.GasPriceFunc(backend.SuggestGasPrice)
		quotes   gasreport.QuoteSource
	)
	if network.GetBlockExplorerAPIURL() != "" {
		explorer, err := explorers.NewExplorerForNetwork(network, settings.EtherscanAPIKey)
		if err != nil {
			s.close()
			return nil, err
		}
		verifier = &deployer.ExplorerVerifier{
			Explorer:  explorer,
			Artifacts: artifactStore,
			Compilers: settings.CompilerVersions(),
		}
		if settings.EtherscanAPIKey != "" {
			gasPrice = gasreport.ExplorerGasPrice{Oracle: explorer}
		}
	}
	if key := settings.GasReporter.CoinMarketCap; key != "" {
		quotes = gasreport.NewCoinMarketCap(key)
	}
	token := settings.GasReporter.Token
	if token == "" {
		token = network.GetNativeTokenSymbol()
	}

	s.rt = &deployer.Runtime{
		Network:           network,
		Confirmations:     settings.BlockConfirmations(network),
		Backend:           backend,
		ChainID:           new(big.Int).SetUint64(network.GetChainID()),
		Deployments:       store,
		Artifacts:         artifactStore,
		Accounts:          accounts,
		Verifier:          verifier,
		EtherscanAPIKey:   settings.EtherscanAPIKey,
		DevelopmentChains: settings.DevelopmentChains,
		UI:                u,
		Log:               log,
		Reporter: gasreport.NewReporter(gasreport.Options{
			Enabled:    settings.GasReporter.Enabled,
			Currency:   settings.GasReporter.Currency,
			Token:      token,
			OutputFile: settings.GasReporter.OutputFile,
			GasPrice:   gasPrice,
			Quotes:     quotes,
			Log:        log,
		}),
	}
	s.deployer = deployer.NewDeployer(s.rt)
	return s, nil
}

func (s *session) Close() {
	s.close()
}

// ensureDeployed runs every deploy script on in-process networks, which
// start empty on each invocation.
func (s *session) ensureDeployed(ctx context.Context) error {
	if !s.network.IsInProcess() {
		return nil
	}
	s.ui.Info("%s is an in-process network, deploying first", s.network.GetName())
	return s.deployer.Fixture(ctx, deployer.TagAll)
}

func (s *session) renderGasReport(ctx context.Context) error {
	return s.rt.Reporter.Render(ctx, s.ui)
}
