// Package deployments keeps the per-network records of deployed contracts.
package deployments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrNotFound = errors.New("deployment not found")

// Deployment is what is known about a contract after it was deployed. A
// record is never edited, a redeploy saves a new one.
type Deployment struct {
	Address         common.Address  `json:"address"`
	ABI             json.RawMessage `json:"abi"`
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     uint64          `json:"blockNumber"`
	GasUsed         uint64          `json:"gasUsed"`
	Deployer        common.Address  `json:"deployer"`
	// Args are the constructor arguments in their display form, ConstructorArgs
	// their abi encoding.
	Args            []string      `json:"args"`
	ConstructorArgs hexutil.Bytes `json:"constructorArgs"`
	SolcVersion     string        `json:"solcVersion,omitempty"`
	NumDeployments  int           `json:"numDeployments"`
	DeployedAt      time.Time     `json:"deployedAt"`
}

func (d *Deployment) ParsedABI() (abi.ABI, error) {
	if len(d.ABI) == 0 {
		return abi.ABI{}, fmt.Errorf("deployment at %s has no abi", d.Address.Hex())
	}
	return abi.JSON(strings.NewReader(string(d.ABI)))
}

// Store reads and writes the records of one network.
type Store interface {
	Get(name string) (*Deployment, error)
	Save(name string, d *Deployment) error
	All() (map[string]*Deployment, error)
	// Reset forgets every record of the network.
	Reset() error
}

func notFound(name, network string) error {
	return fmt.Errorf("%s on %s: %w", name, network, ErrNotFound)
}

func clone(d *Deployment) *Deployment {
	c := *d
	c.ABI = append(json.RawMessage(nil), d.ABI...)
	c.Args = append([]string(nil), d.Args...)
	c.ConstructorArgs = append(hexutil.Bytes(nil), d.ConstructorArgs...)
	return &c
}
