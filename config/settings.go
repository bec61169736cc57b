package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tranvictor/fundme/networks"
	"github.com/tranvictor/fundme/util/account"
)

// DefaultConfigName is looked up in the working directory when no config
// file is given.
const DefaultConfigName = "fundme"

type Compiler struct {
	Version string `mapstructure:"version" yaml:"version"`
}

type SoliditySettings struct {
	Compilers []Compiler `mapstructure:"compilers" yaml:"compilers"`
}

// NetworkSettings override what is built into a network.
type NetworkSettings struct {
	URL                string   `mapstructure:"url" yaml:"url,omitempty"`
	Accounts           []string `mapstructure:"accounts" yaml:"accounts,omitempty"`
	BlockConfirmations uint64   `mapstructure:"blockConfirmations" yaml:"blockConfirmations,omitempty"`
}

type GasReporterSettings struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"`
	Currency   string `mapstructure:"currency" yaml:"currency"`
	// Token overrides the native token of the network, e.g. to price
	// gas in MATIC.
	Token         string `mapstructure:"token" yaml:"token,omitempty"`
	CoinMarketCap string `mapstructure:"coinmarketcap" yaml:"coinmarketcap,omitempty"`
}

type PathsSettings struct {
	Artifacts   string `mapstructure:"artifacts" yaml:"artifacts"`
	Deployments string `mapstructure:"deployments" yaml:"deployments"`
}

// Settings is the project configuration: config file, then environment,
// then flags, each overriding the previous.
type Settings struct {
	DefaultNetwork    string                     `mapstructure:"defaultNetwork" yaml:"defaultNetwork"`
	Solidity          SoliditySettings           `mapstructure:"solidity" yaml:"solidity"`
	Networks          map[string]NetworkSettings `mapstructure:"networks" yaml:"networks,omitempty"`
	NamedAccounts     map[string]int             `mapstructure:"namedAccounts" yaml:"namedAccounts"`
	DevelopmentChains []string                   `mapstructure:"developmentChains" yaml:"developmentChains"`
	GasReporter       GasReporterSettings        `mapstructure:"gasReporter" yaml:"gasReporter"`
	Paths             PathsSettings              `mapstructure:"paths" yaml:"paths"`
	PrivateKey        string                     `mapstructure:"privateKey" yaml:"privateKey,omitempty"`
	EtherscanAPIKey   string                     `mapstructure:"etherscanApiKey" yaml:"etherscanApiKey,omitempty"`

	file string
}

func Defaults() Settings {
	return Settings{
		DefaultNetwork: "hardhat",
		Solidity: SoliditySettings{
			Compilers: []Compiler{{Version: "0.8.8"}, {Version: "0.6.6"}},
		},
		NamedAccounts:     map[string]int{"deployer": 0, "user": 1},
		DevelopmentChains: []string{"hardhat", "localhost"},
		GasReporter: GasReporterSettings{
			Currency: "USD",
		},
		Paths: PathsSettings{
			Artifacts:   "artifacts",
			Deployments: "deployments",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("defaultNetwork", d.DefaultNetwork)
	compilers := []map[string]any{}
	for _, c := range d.Solidity.Compilers {
		compilers = append(compilers, map[string]any{"version": c.Version})
	}
	v.SetDefault("solidity.compilers", compilers)
	namedAccounts := map[string]any{}
	for role, index := range d.NamedAccounts {
		namedAccounts[role] = index
	}
	v.SetDefault("namedAccounts", namedAccounts)
	v.SetDefault("developmentChains", d.DevelopmentChains)
	v.SetDefault("gasReporter.enabled", d.GasReporter.Enabled)
	v.SetDefault("gasReporter.currency", d.GasReporter.Currency)
	v.SetDefault("paths.artifacts", d.Paths.Artifacts)
	v.SetDefault("paths.deployments", d.Paths.Deployments)
}

// Load reads the config file at path, or fundme.yaml in the working
// directory when path is empty. Only an explicitly given file has to
// exist.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	_ = v.BindEnv("privateKey", "PRIVATE_KEY")
	_ = v.BindEnv("etherscanApiKey", "ETHERSCAN_API_KEY")
	_ = v.BindEnv("gasReporter.coinmarketcap", "COINMARKETCAP_API_KEY")
	_ = v.BindEnv("gasReporter.enabled", "REPORT_GAS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("couldn't read config: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("couldn't parse config: %w", err)
	}
	s.file = v.ConfigFileUsed()
	return s, nil
}

// File is the config file the settings were read from, empty when none
// was found.
func (s *Settings) File() string {
	return s.file
}

func (s *Settings) network(n networks.Network) NetworkSettings {
	return s.Networks[strings.ToLower(n.GetName())]
}

// RPCURL picks the node of n: the config file, then the network's
// environment variable, then its default nodes. In-process networks have
// none.
func (s *Settings) RPCURL(n networks.Network) (string, error) {
	if n.IsInProcess() {
		return "", nil
	}
	if url := s.network(n).URL; url != "" {
		return url, nil
	}
	if name := n.GetNodeVariableName(); name != "" {
		if url := os.Getenv(name); url != "" {
			return url, nil
		}
	}
	nodes := n.GetDefaultNodes()
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "", fmt.Errorf("no node for %s, set %s or networks.%s.url", n.GetName(), n.GetNodeVariableName(), n.GetName())
	}
	return nodes[names[0]], nil
}

// AccountKeys are the private keys signing on n, in named account order.
// Development networks fall back to the well known development keys.
func (s *Settings) AccountKeys(n networks.Network) []string {
	if keys := s.network(n).Accounts; len(keys) > 0 {
		return keys
	}
	if s.PrivateKey != "" {
		return []string{s.PrivateKey}
	}
	if networks.IsDevelopmentChain(n.GetName(), s.DevelopmentChains) {
		return account.DevKeys
	}
	return nil
}

func (s *Settings) BlockConfirmations(n networks.Network) uint64 {
	if confs := s.network(n).BlockConfirmations; confs > 0 {
		return confs
	}
	return n.GetBlockConfirmations()
}

func (s *Settings) CompilerVersions() []string {
	result := make([]string, 0, len(s.Solidity.Compilers))
	for _, c := range s.Solidity.Compilers {
		result = append(result, c.Version)
	}
	return result
}

// WriteDefault writes the default settings as yaml to path.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	content, err := yaml.Marshal(Defaults())
	if err != nil {
		return err
	}
	header := "# fundme configuration. PRIVATE_KEY, ETHERSCAN_API_KEY and\n" +
		"# COINMARKETCAP_API_KEY are read from the environment.\n"
	return os.WriteFile(path, append([]byte(header), content...), 0o600)
}

// Mask hides all but the edges of a secret.
func Mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 12 {
		return "****"
	}
	return secret[:6] + "..." + secret[len(secret)-4:]
}
