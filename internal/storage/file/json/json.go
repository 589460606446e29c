package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/lifexp/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores each key as an indented json file under a directory.
type BlobStorage struct {
	path string
}

// NewJsonBlob creates a json file storage rooted at the given directory.
func NewJsonBlob(path string) *BlobStorage {
	if path == "" {
		path = storage.DefaultDir
	}
	return &BlobStorage{
		path: path,
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	err := Save(s.path, k.Path(), value)
	if err == nil {
		log.Debug().Str("path", s.path).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(s.path, k.Path(), value)
}

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", fileName, err)
	}

	// write to a temp file first, so a failed write never leaves a partial artifact
	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))
	f, err := os.CreateTemp(filePath, fmt.Sprintf(".%s-*", fileName))
	if err != nil {
		return fmt.Errorf("could not create file for '%s': %w", p, err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("could not write bytes to file '%s': %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close file '%s': %w", p, err)
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("could not move file into '%s': %w", p, err)
	}
	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	} else if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", p, err.Error(), storage.CouldNotLoadErr)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal '%s' %s: %w", p, err.Error(), storage.CouldNotLoadErr)
	}

	return nil
}
