package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfiguration is the category of every error caused by a malformed graph or toolchain.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrCommandExecutionFailed is the category of every failure of an external command.
	ErrCommandExecutionFailed = zerr.New("command execution failed")

	// ErrOutputDirCreateFailed is returned when the parent directory of an artifact cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)

var (
	// ErrEmptySource is returned when a compile target declares an empty source path.
	ErrEmptySource = zerr.Wrap(ErrInvalidConfiguration, "source path is empty")

	// ErrEmptyOutput is returned when a link target declares a blank output path.
	ErrEmptyOutput = zerr.Wrap(ErrInvalidConfiguration, "output path is empty")

	// ErrAmbiguousTarget is returned when a target declares both a source and an output.
	ErrAmbiguousTarget = zerr.Wrap(ErrInvalidConfiguration, "target declares both source and output")

	// ErrUnclassifiedTarget is returned when a target declares neither a source nor an output.
	ErrUnclassifiedTarget = zerr.Wrap(ErrInvalidConfiguration, "target declares neither source nor output")

	// ErrEmptyLinkInputs is returned when a link target has no dependencies.
	ErrEmptyLinkInputs = zerr.Wrap(ErrInvalidConfiguration, "link target has no inputs")

	// ErrMissingDependency is returned when a target references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.Wrap(ErrInvalidConfiguration, "missing dependency")

	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.Wrap(ErrInvalidConfiguration, "target already exists")

	// ErrTargetNotFound is returned when a requested target is not found in the graph.
	ErrTargetNotFound = zerr.Wrap(ErrInvalidConfiguration, "target not found")

	// ErrInvalidTargetName is returned when a target name contains invalid characters.
	ErrInvalidTargetName = zerr.Wrap(ErrInvalidConfiguration, "invalid target name")

	// ErrEmptyCompiler is returned when the toolchain has no compiler invocation.
	ErrEmptyCompiler = zerr.Wrap(ErrInvalidConfiguration, "compiler is empty")

	// ErrEmptyObjectSuffix is returned when the toolchain has no object suffix.
	ErrEmptyObjectSuffix = zerr.Wrap(ErrInvalidConfiguration, "object suffix is empty")

	// ErrSourceSuffixMismatch is returned when a source path does not carry the configured source suffix.
	ErrSourceSuffixMismatch = zerr.Wrap(ErrInvalidConfiguration, "source does not end with the source suffix")

	// ErrNoTargetsSpecified is returned when no targets are given and the project has no default.
	ErrNoTargetsSpecified = zerr.Wrap(ErrInvalidConfiguration, "no targets specified")

	// ErrUnsupportedVersion is returned when the config file declares an unknown schema version.
	ErrUnsupportedVersion = zerr.Wrap(ErrInvalidConfiguration, "unsupported config version")
)

var (
	// ErrCommandExited is returned when a command terminates with a nonzero or abnormal exit status.
	ErrCommandExited = zerr.Wrap(ErrCommandExecutionFailed, "command exited unsuccessfully")

	// ErrCommandSpawnFailed is returned when a command cannot be started or waited for.
	ErrCommandSpawnFailed = zerr.Wrap(ErrCommandExecutionFailed, "failed to spawn command")
)

var (
	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrStoreClearFailed is returned when the build record store cannot be removed.
	ErrStoreClearFailed = zerr.New("failed to clear build record store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find " + ProjectFileName)

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFailedToCleanOutput is returned when removing a build artifact fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output")
)
