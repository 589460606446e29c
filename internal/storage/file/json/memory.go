package json

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/drakos74/lifexp/internal/storage"
)

// MemoryStorage keeps the json documents of the blob storage in memory, by file name.
type MemoryStorage struct {
	docs  map[string][]byte
	mutex sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory json storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		docs: make(map[string][]byte),
	}
}

func (m *MemoryStorage) Store(k storage.Key, value interface{}) error {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", k.Path(), err)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.docs[k.Path()] = b
	return nil
}

func (m *MemoryStorage) Load(k storage.Key, value interface{}) error {
	m.mutex.RLock()
	b, ok := m.docs[k.Path()]
	m.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("no document '%s': %w", k.Path(), storage.NotFoundErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s' %s: %w", k.Path(), err.Error(), storage.CouldNotLoadErr)
	}
	return nil
}
