package storage

import (
	"errors"
	"fmt"
)

// DefaultDir is the root directory of the file based storage.
var DefaultDir = "file-storage"

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key of a persisted artifact.
type Key struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Path returns the file name for the key, without extension.
func (k Key) Path() string {
	if k.Label == "" {
		return k.Name
	}
	return fmt.Sprintf("%s_%s", k.Name, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage is a noop storage.
type VoidStorage struct {
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}

// NewVoidStorage creates a new noop storage.
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}
