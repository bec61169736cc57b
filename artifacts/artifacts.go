// Package artifacts reads the compiled contract artifacts written by the
// Solidity toolchain (hardhat layout):
//
//	artifacts/
//	  build-info/<id>.json
//	  contracts/FundMe.sol/FundMe.json
//	  contracts/FundMe.sol/FundMe.dbg.json
//	  @chainlink/contracts/src/v0.6/tests/MockV3Aggregator.sol/MockV3Aggregator.json
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrArtifactNotFound = errors.New("artifact not found")

type Artifact struct {
	ContractName     string
	SourceName       string
	ABI              abi.ABI
	RawABI           json.RawMessage
	Bytecode         []byte
	DeployedBytecode []byte

	path string
}

// FullyQualifiedName is "<source>:<contract>", the name explorers expect.
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// BuildInfo holds the compiler input an artifact was produced from.
type BuildInfo struct {
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

type artifactFile struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

type debugFile struct {
	BuildInfo string `json:"buildInfo"`
}

// Store looks artifacts up by contract name under a root directory. The
// directory is indexed once, on first use.
type Store struct {
	root string

	once    sync.Once
	index   map[string][]string
	scanErr error

	mu    sync.Mutex
	cache map[string]*Artifact
}

func NewStore(root string) *Store {
	return &Store{
		root:  root,
		cache: map[string]*Artifact{},
	}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) scan() {
	s.index = map[string][]string{}
	s.scanErr = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".dbg.json") {
			return nil
		}
		contract := strings.TrimSuffix(name, ".json")
		s.index[contract] = append(s.index[contract], path)
		return nil
	})
}

// Get returns the artifact of the contract called name. Names compiled from
// more than one source are ambiguous and rejected.
func (s *Store) Get(name string) (*Artifact, error) {
	s.once.Do(s.scan)
	if s.scanErr != nil {
		return nil, fmt.Errorf("couldn't read artifacts in %s: %w", s.root, s.scanErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, found := s.cache[name]; found {
		return a, nil
	}

	paths := s.index[name]
	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("contract %s in %s: %w", name, s.root, ErrArtifactNotFound)
	case 1:
	default:
		return nil, fmt.Errorf("contract name %s is ambiguous, found %s", name, strings.Join(paths, ", "))
	}

	a, err := ReadArtifact(paths[0])
	if err != nil {
		return nil, err
	}
	s.cache[name] = a
	return a, nil
}

// ReadArtifact parses a single artifact json file.
func ReadArtifact(path string) (*Artifact, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read artifact %s: %w", path, err)
	}
	file := artifactFile{}
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("couldn't parse artifact %s: %w", path, err)
	}
	if file.ContractName == "" || len(file.ABI) == 0 {
		return nil, fmt.Errorf("%s is not a contract artifact", path)
	}
	parsed, err := abi.JSON(strings.NewReader(string(file.ABI)))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse abi of %s: %w", file.ContractName, err)
	}
	bytecode, err := decodeHex(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("bytecode of %s: %w", file.ContractName, err)
	}
	deployed, err := decodeHex(file.DeployedBytecode)
	if err != nil {
		return nil, fmt.Errorf("deployed bytecode of %s: %w", file.ContractName, err)
	}
	return &Artifact{
		ContractName:     file.ContractName,
		SourceName:       file.SourceName,
		ABI:              parsed,
		RawABI:           file.ABI,
		Bytecode:         bytecode,
		DeployedBytecode: deployed,
		path:             path,
	}, nil
}

// BuildInfo follows the artifact's debug file to the compiler input it was
// built from.
func (s *Store) BuildInfo(a *Artifact) (*BuildInfo, error) {
	dbgPath := strings.TrimSuffix(a.path, ".json") + ".dbg.json"
	content, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't read debug file of %s: %w", a.ContractName, err)
	}
	dbg := debugFile{}
	if err := json.Unmarshal(content, &dbg); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", dbgPath, err)
	}
	if dbg.BuildInfo == "" {
		return nil, fmt.Errorf("%s doesn't point to a build info", dbgPath)
	}

	infoPath := filepath.Join(filepath.Dir(dbgPath), filepath.FromSlash(dbg.BuildInfo))
	content, err = os.ReadFile(infoPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't read build info of %s: %w", a.ContractName, err)
	}
	info := BuildInfo{}
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", infoPath, err)
	}
	return &info, nil
}

// decodeHex accepts "0x..", bare hex and the empty string.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
