package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/fundme/config"
	"github.com/tranvictor/fundme/contracts"
	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/ui"
)

// The test artifacts carry constructor-only bytecode, the contracts they
// deploy accept any call.
const testArtifacts = "../artifacts/testdata/artifacts"

// project writes a fundme.yaml in a fresh working directory and points the
// flags at it.
func project(t *testing.T, yaml string) string {
	dir := t.TempDir()
	artifactsDir, err := filepath.Abs(testArtifacts)
	require.NoError(t, err)
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, name := range []string{"PRIVATE_KEY", "ETHERSCAN_API_KEY", "COINMARKETCAP_API_KEY", "REPORT_GAS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	content := "paths:\n  artifacts: " + artifactsDir + "\n  deployments: deployments\n" + yaml
	path := filepath.Join(dir, "fundme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config.ConfigFile = ""
	config.Network = ""
	config.Verbose = false
	t.Cleanup(func() {
		config.ConfigFile = ""
		config.Network = ""
	})
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFundAndWithdrawOnInProcessNetwork(t *testing.T) {
	project(t, "gasReporter:\n  enabled: true\n")
	u := ui.NewRecordingUI()
	ctx := context.Background()

	s, err := newSession(ctx, u)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ensureDeployed(ctx))
	assert.True(t, u.HasMessage("Local network detected! Deploying mocks..."))
	assert.True(t, u.HasMessage("FundMe deployed at"))

	require.NoError(t, fund(ctx, s, "0.1"))
	require.NoError(t, withdraw(ctx, s, false))
	require.NoError(t, withdraw(ctx, s, true))
	assert.True(t, u.HasMessage("Funding contract..."))
	assert.True(t, u.HasMessage("Funded!"))
	assert.True(t, u.HasMessage("Withdrawing from contract..."))
	assert.True(t, u.HasMessage("Got it back!"))

	methods := map[string]int{}
	for _, stats := range s.rt.Reporter.Stats() {
		methods[stats.Contract+"."+stats.Method] = stats.Calls()
	}
	assert.Equal(t, 1, methods["FundMe.fund"])
	assert.Equal(t, 1, methods["FundMe.withdraw"])
	assert.Equal(t, 1, methods["FundMe.cheaperWithdraw"])
	assert.Equal(t, 1, methods["FundMe.deployment"])

	require.NoError(t, s.renderGasReport(ctx))
	assert.True(t, u.HasMessage("FundMe | cheaperWithdraw | "))
}

func TestFundRejectsBadValues(t *testing.T) {
	project(t, "")
	ctx := context.Background()
	s, err := newSession(ctx, ui.NewRecordingUI())
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.ensureDeployed(ctx))

	assert.Error(t, fund(ctx, s, "lots"))
	assert.Error(t, fund(ctx, s, "0"))
}

func TestFundWithoutDeployment(t *testing.T) {
	project(t, "")
	ctx := context.Background()
	s, err := newSession(ctx, ui.NewRecordingUI())
	require.NoError(t, err)
	defer s.Close()

	err = fund(ctx, s, "0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fundme deploy")
	_, err = deployedFundMe(s)
	assert.ErrorContains(t, err, contracts.FundMeName)
}

func TestUnknownNetworkSuggestsNames(t *testing.T) {
	project(t, "")
	_, err := run(t, "deployments", "--network", "sepol")
	require.Error(t, err)
	assert.ErrorIs(t, err, networks.ErrNetworkNotFound)
	assert.Contains(t, err.Error(), "sepolia")
}

func TestDeploymentsOnEmptyNetwork(t *testing.T) {
	project(t, "")
	out, err := run(t, "deployments", "--network", "sepolia")
	require.NoError(t, err)
	assert.Contains(t, out, "No deployments on sepolia yet.")

	out, err = run(t, "deployments", "--network", "hardhat")
	require.NoError(t, err)
	assert.Contains(t, out, "in-process")
}

func TestResetOfLiveNetworkAsksFirst(t *testing.T) {
	dir := project(t, "")
	recorded := filepath.Join(dir, "deployments", "sepolia")
	require.NoError(t, os.MkdirAll(recorded, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(recorded, ".chainId"), []byte("11155111"), 0o644))

	rootCmd.SetIn(strings.NewReader("n\n"))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		config.Reset = false
	})
	out, err := run(t, "deploy", "--network", "sepolia", "--reset")
	assert.ErrorContains(t, err, "reset of sepolia aborted")
	assert.Contains(t, out, "Forget every deployment recorded in")
	assert.DirExists(t, recorded)
}

func TestConfigInitAndShow(t *testing.T) {
	dir := project(t, "")
	path := filepath.Join(dir, "other.yaml")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = run(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "--force")

	t.Setenv("PRIVATE_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	out, err = run(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "hardhat (chain 1337)")
	assert.Contains(t, out, "deployer=0, user=1")
	assert.NotContains(t, out, "bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
}

func TestNetworkListShowsFeeds(t *testing.T) {
	project(t, "")
	out, err := run(t, "network", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sepolia")
	assert.Contains(t, out, "0x694AA1769357215DE4FAC081bf1f309aDC325306")
	assert.Contains(t, out, "mock")
}

func TestNetworkAdd(t *testing.T) {
	dir := project(t, "")
	content := `{"name": "fundme-testnet", "chain_id": 424242, "node_variable_name": "FUNDME_TESTNET_RPC_URL",
		"eth_usd_price_feed": "0x1111111111111111111111111111111111111111"}`

	out, err := run(t, "network", "add", "--file", content)
	require.NoError(t, err)
	assert.Contains(t, out, "fundme-testnet with chain ID 424242 added")
	assert.FileExists(t, filepath.Join(dir, ".fundme", "networks", "fundme-testnet.json"))

	n, err := networks.GetNetwork("fundme-testnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(424242), n.GetChainID())

	_, err = run(t, "network", "add", "--file", content)
	assert.ErrorContains(t, err, "--force")
	config.NetworkForce = false
	_, err = run(t, "network", "add", "--file", content, "--force")
	require.NoError(t, err)
	t.Cleanup(func() { config.NetworkForce = false })
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, VERSION)
}
