package ports

// DirMaker creates the directories commands write their artifacts into.
//
//go:generate mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type DirMaker interface {
	// EnsureDir creates path and any missing parents. An existing directory is not an error.
	EnsureDir(path string) error
}
