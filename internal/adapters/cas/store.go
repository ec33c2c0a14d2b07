// Package cas stores the record of the last execution of every target.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildRecordStore = (*Store)(nil)

// Store implements ports.BuildRecordStore with one JSON file per target,
// named by the xxhash of the target name.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record of a target. It returns nil, nil when there is none.
func (s *Store) Get(root, target string) (*domain.BuildRecord, error) {
	filename := s.filename(root, target)
	//nolint:gosec // Path is constructed from the project root and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "target", target)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrStoreUnmarshalFailed, err), "target", target)
	}

	return &record, nil
}

// Put stores the record, replacing the previous one of the same target.
func (s *Store) Put(root string, record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStoreMarshalFailed, err)
	}

	filename := s.filename(root, record.Target)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return errors.Join(domain.ErrStoreCreateFailed, err)
	}

	// Write to a temporary file first so readers never see a partial record.
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the project root and a hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "target", record.Target)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "target", record.Target)
	}

	return nil
}

// Clear removes every stored record.
func (s *Store) Clear(root string) error {
	if err := os.RemoveAll(filepath.Join(root, domain.DefaultRecordsPath())); err != nil {
		return errors.Join(domain.ErrStoreClearFailed, err)
	}
	return nil
}

func (s *Store) filename(root, target string) string {
	name := strconv.FormatUint(xxhash.Sum64String(target), 16)
	return filepath.Join(root, domain.DefaultRecordsPath(), name+".json")
}
