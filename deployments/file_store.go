package deployments

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const chainIDFile = ".chainId"

// FileStore keeps one json file per contract under <root>/<network>/, next
// to a .chainId file that pins the directory to a chain.
type FileStore struct {
	mu      sync.Mutex
	dir     string
	network string
	chainID uint64
}

// NewFileStore opens the records of network. It fails when the directory
// was written for another chain id.
func NewFileStore(root, network string, chainID uint64) (*FileStore, error) {
	s := &FileStore{
		dir:     filepath.Join(root, network),
		network: network,
		chainID: chainID,
	}
	content, err := os.ReadFile(filepath.Join(s.dir, chainIDFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	recorded, err := strconv.ParseUint(strings.TrimSpace(string(content)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", filepath.Join(s.dir, chainIDFile), err)
	}
	if recorded != chainID {
		return nil, fmt.Errorf(
			"deployments in %s belong to chain %d, not %d. Use --reset to start over",
			s.dir, recorded, chainID,
		)
	}
	return s, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Get(name string) (*Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(s.path(name), name)
}

func (s *FileStore) read(path, name string) (*Deployment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(name, s.network)
		}
		return nil, err
	}
	d := &Deployment{}
	if err := json.Unmarshal(content, d); err != nil {
		return nil, fmt.Errorf("couldn't parse deployment %s: %w", path, err)
	}
	return d, nil
}

func (s *FileStore) Save(name string, d *Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	chainIDPath := filepath.Join(s.dir, chainIDFile)
	if _, err := os.Stat(chainIDPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(chainIDPath, []byte(strconv.FormatUint(s.chainID, 10)), 0o644); err != nil {
			return err
		}
	}
	jsonData, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	// write then rename so a crash never leaves half a record behind
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(name))
}

func (s *FileStore) All() (map[string]*Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*Deployment{}, nil
		}
		return nil, err
	}
	result := map[string]*Deployment{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		d, err := s.read(filepath.Join(s.dir, e.Name()), name)
		if err != nil {
			return nil, err
		}
		result[name] = d
	}
	return result, nil
}

func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.RemoveAll(s.dir)
}

// RemoveNetwork deletes every record of network under root, whatever chain
// they were written for.
func RemoveNetwork(root, network string) error {
	return os.RemoveAll(filepath.Join(root, network))
}

// Names returns the names of all records, sorted.
func Names(all map[string]*Deployment) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
