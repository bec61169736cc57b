package deployments

import "sync"

// MemoryStore is the store of in-process chains, whose contracts don't
// outlive the process.
type MemoryStore struct {
	mu      sync.Mutex
	network string
	data    map[string]*Deployment
}

func NewMemoryStore(network string) *MemoryStore {
	return &MemoryStore{
		network: network,
		data:    map[string]*Deployment{},
	}
}

func (s *MemoryStore) Get(name string) (*Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, found := s.data[name]
	if !found {
		return nil, notFound(name, s.network)
	}
	return clone(d), nil
}

func (s *MemoryStore) Save(name string, d *Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = clone(d)
	return nil
}

func (s *MemoryStore) All() (map[string]*Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[string]*Deployment, len(s.data))
	for name, d := range s.data {
		result[name] = clone(d)
	}
	return result, nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]*Deployment{}
	return nil
}
