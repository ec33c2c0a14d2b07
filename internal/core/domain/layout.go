package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal project state directory.
	StateDirName = ".sob"

	// RecordsDirName is the name of the build record directory.
	RecordsDirName = "records"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "sob.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for sob metadata.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultRecordsPath returns the default path for the build record store.
// It joins .sob and records.
func DefaultRecordsPath() string {
	return filepath.Join(StateDirName, RecordsDirName)
}
