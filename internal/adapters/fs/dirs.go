// Package fs provides filesystem adapters.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.DirMaker = (*DirMaker)(nil)

// DirMaker creates output directories. Concurrent requests for the same
// directory share one mkdir call.
type DirMaker struct {
	group singleflight.Group
}

// NewDirMaker creates a new DirMaker.
func NewDirMaker() *DirMaker {
	return &DirMaker{}
}

// EnsureDir creates path and any missing parents. An existing directory is not an error.
func (d *DirMaker) EnsureDir(path string) error {
	path = filepath.Clean(path)
	_, err, _ := d.group.Do(path, func() (any, error) {
		if err := os.MkdirAll(path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
		}
		return nil, nil
	})
	return err
}
