// Package build holds version information injected at link time.
package build

// These variables are set with -ldflags "-X go.trai.ch/sob/internal/build.Version=...".
var (
	// Version is the released version of sob.
	Version = "dev"
	// Commit is the revision the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
