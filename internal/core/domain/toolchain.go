package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Toolchain holds the compiler invocation and the naming conventions used to
// turn targets into commands. It is read-only once a build session starts.
type Toolchain struct {
	// Compiler is the compiler invocation. It may hold several words, e.g. "ccache g++".
	Compiler string
	// SourceSuffix is stripped from source base names. Empty strips the file extension.
	SourceSuffix string
	// ObjectSuffix is appended to the stripped base name to form the object path.
	ObjectSuffix string
	// BuildPrefix is the directory objects are written to. Empty means the working directory.
	BuildPrefix string
	// CompileFlags are appended to every compile command.
	CompileFlags []string
	// LinkFlags are appended to every link command.
	LinkFlags []string
}

// ToolchainOption configures optional Toolchain fields.
type ToolchainOption func(*Toolchain)

// WithSourceSuffix sets the suffix stripped from source names.
func WithSourceSuffix(suffix string) ToolchainOption {
	return func(tc *Toolchain) {
		tc.SourceSuffix = suffix
	}
}

// WithBuildPrefix sets the object output directory.
func WithBuildPrefix(prefix string) ToolchainOption {
	return func(tc *Toolchain) {
		tc.BuildPrefix = prefix
	}
}

// WithCompileFlags appends extra compile flags.
func WithCompileFlags(flags ...string) ToolchainOption {
	return func(tc *Toolchain) {
		tc.CompileFlags = append(tc.CompileFlags, flags...)
	}
}

// WithLinkFlags appends extra link flags.
func WithLinkFlags(flags ...string) ToolchainOption {
	return func(tc *Toolchain) {
		tc.LinkFlags = append(tc.LinkFlags, flags...)
	}
}

// NewToolchain creates a validated Toolchain.
func NewToolchain(compiler, objectSuffix string, opts ...ToolchainOption) (*Toolchain, error) {
	tc := &Toolchain{
		Compiler:     compiler,
		ObjectSuffix: objectSuffix,
	}
	for _, opt := range opts {
		opt(tc)
	}
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Validate checks that the toolchain can synthesize commands.
func (tc *Toolchain) Validate() error {
	if len(tc.CompilerArgv()) == 0 {
		return zerr.Wrap(ErrEmptyCompiler, "invalid toolchain")
	}
	if strings.TrimSpace(tc.ObjectSuffix) == "" {
		return zerr.Wrap(ErrEmptyObjectSuffix, "invalid toolchain")
	}
	return nil
}

// CompilerArgv splits the compiler invocation into its words.
func (tc *Toolchain) CompilerArgv() []string {
	return strings.Fields(tc.Compiler)
}

// Clone returns a deep copy of the toolchain.
func (tc *Toolchain) Clone() *Toolchain {
	c := *tc
	c.CompileFlags = slices.Clone(tc.CompileFlags)
	c.LinkFlags = slices.Clone(tc.LinkFlags)
	return &c
}
