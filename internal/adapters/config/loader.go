// Package config loads the sob.yaml project description.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

const (
	// SupportedVersion is the only configuration version understood by the loader.
	SupportedVersion = "1"
	// DefaultObjectSuffix is used when the toolchain does not name an object suffix.
	DefaultObjectSuffix = ".o"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a new Loader reading from the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading through fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{logger: logger, fs: fsys}
}

// DiscoverRoot walks up from cwd and returns the first directory containing sob.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir := filepath.Clean(cwd)
	for {
		if info, err := l.fs.Stat(filepath.Join(dir, domain.ProjectFileName)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no project file above the working directory"), "cwd", cwd)
		}
		dir = parent
	}
}

// Load finds sob.yaml from cwd and turns it into a project.
// The graph is populated but not validated; validation happens before every build.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	dir, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}
	configPath := filepath.Join(dir, domain.ProjectFileName)

	sobfile, err := l.read(configPath)
	if err != nil {
		return nil, err
	}

	if sobfile.Version != "" && sobfile.Version != SupportedVersion {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "unsupported configuration version"),
			"version", sobfile.Version), "file", configPath)
	}

	tc, err := l.toolchain(&sobfile.Toolchain)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	g, err := buildGraph(sobfile.Targets)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	project := &domain.Project{
		Root:      resolveRoot(dir, sobfile.Root),
		Toolchain: tc,
		Graph:     g,
	}

	if sobfile.Default != "" {
		project.Default = domain.NewIdentity(sobfile.Default)
		if _, ok := g.GetTarget(project.Default); !ok {
			err := zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "default target is not declared"), "target", sobfile.Default)
			return nil, zerr.With(err, "file", configPath)
		}
	}

	return project, nil
}

func (l *Loader) read(configPath string) (*Sobfile, error) {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "file", configPath)
	}

	var sobfile Sobfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sobfile); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "file", configPath)
	}

	return &sobfile, nil
}

func (l *Loader) toolchain(dto *ToolchainDTO) (*domain.Toolchain, error) {
	objectSuffix := dto.ObjectSuffix
	if objectSuffix == "" {
		l.logger.Warn(fmt.Sprintf("toolchain.objectSuffix is not set in %s, using %q", domain.ProjectFileName, DefaultObjectSuffix))
		objectSuffix = DefaultObjectSuffix
	}

	return domain.NewToolchain(strings.TrimSpace(dto.Compiler), objectSuffix,
		domain.WithSourceSuffix(dto.SourceSuffix),
		domain.WithBuildPrefix(dto.BuildPrefix),
		domain.WithCompileFlags(dto.CxxFlags...),
		domain.WithLinkFlags(dto.LdFlags...),
	)
}

// buildGraph adds every declared target, in name order, after checking that
// each dependency is declared.
func buildGraph(targets map[string]*TargetDTO) (*domain.Graph, error) {
	g := domain.NewGraph()

	for _, name := range slices.Sorted(maps.Keys(targets)) {
		dto := targets[name]
		if dto == nil {
			dto = &TargetDTO{}
		}

		for _, dep := range dto.DependsOn {
			if _, ok := targets[dep]; !ok {
				err := zerr.Wrap(domain.ErrMissingDependency, "dependency is not declared")
				return nil, zerr.With(zerr.With(err, "target", name), "dependency", dep)
			}
		}

		target := &domain.Target{
			Name:         domain.NewIdentity(name),
			Source:       dto.Source,
			Output:       dto.Output,
			Dependencies: domain.NewIdentities(dto.DependsOn),
		}
		if err := g.AddTarget(target); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func resolveRoot(configDir, configuredRoot string) string {
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}
