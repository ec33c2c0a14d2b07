// Package synth turns targets into the external commands that produce them.
// Every function is pure: nothing here touches the filesystem.
package synth

import (
	"path/filepath"
	"strings"

	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/zerr"
)

// ObjectPath derives the object file a source compiles to.
// The source suffix is replaced with the object suffix and the result is
// placed under the build prefix, keeping the source's relative directory.
func ObjectPath(source string, tc *domain.Toolchain) (string, error) {
	var stem string
	if tc.SourceSuffix != "" {
		s, ok := strings.CutSuffix(source, tc.SourceSuffix)
		if !ok || isEmptyStem(s) {
			err := zerr.With(zerr.Wrap(domain.ErrSourceSuffixMismatch, "cannot derive object path"), "source", source)
			return "", zerr.With(err, "suffix", tc.SourceSuffix)
		}
		stem = s
	} else {
		stem = strings.TrimSuffix(source, filepath.Ext(source))
		if isEmptyStem(stem) {
			return "", zerr.With(zerr.Wrap(domain.ErrSourceSuffixMismatch, "cannot derive object path"), "source", source)
		}
	}

	obj := stem + tc.ObjectSuffix
	if tc.BuildPrefix != "" {
		obj = filepath.Join(tc.BuildPrefix, obj)
	}
	return obj, nil
}

func isEmptyStem(stem string) bool {
	return stem == "" || strings.HasSuffix(stem, "/") || strings.HasSuffix(stem, string(filepath.Separator))
}

// Artifact returns the path a target produces: the object path of a compile
// target or the declared output of a link target.
func Artifact(t *domain.Target, tc *domain.Toolchain) (string, error) {
	kind, err := t.Kind()
	if err != nil {
		return "", err
	}
	if kind == domain.KindLink {
		return t.Output, nil
	}
	obj, err := ObjectPath(t.Source, tc)
	if err != nil {
		return "", zerr.With(err, "target", t.Name.String())
	}
	return obj, nil
}

// CompileCommand builds "<compiler> -c <source> -o <object> <cxxflags...>".
func CompileCommand(t *domain.Target, tc *domain.Toolchain) (*domain.Command, error) {
	obj, err := Artifact(t, tc)
	if err != nil {
		return nil, err
	}

	argv := tc.CompilerArgv()
	argv = append(argv, "-c", t.Source, "-o", obj)
	argv = append(argv, tc.CompileFlags...)

	return &domain.Command{
		Target: t.Name,
		Kind:   domain.KindCompile,
		Argv:   argv,
		Output: obj,
		Dirs:   parentDirs(obj),
	}, nil
}

// LinkCommand builds "<compiler> <inputs...> -o <output> <ldflags...>".
// deps must be the resolved dependencies of t in declared order; their
// artifacts become the link inputs in that order.
func LinkCommand(t *domain.Target, deps []domain.Target, tc *domain.Toolchain) (*domain.Command, error) {
	argv := tc.CompilerArgv()
	for i := range deps {
		input, err := Artifact(&deps[i], tc)
		if err != nil {
			return nil, err
		}
		argv = append(argv, input)
	}
	argv = append(argv, "-o", t.Output)
	argv = append(argv, tc.LinkFlags...)

	return &domain.Command{
		Target: t.Name,
		Kind:   domain.KindLink,
		Argv:   argv,
		Output: t.Output,
		Dirs:   parentDirs(t.Output),
	}, nil
}

// For synthesizes the command of a target, resolving link inputs from the graph.
func For(g *domain.Graph, t *domain.Target, tc *domain.Toolchain) (*domain.Command, error) {
	kind, err := t.Kind()
	if err != nil {
		return nil, err
	}
	if kind == domain.KindCompile {
		return CompileCommand(t, tc)
	}

	deps := make([]domain.Target, 0, len(t.Dependencies))
	for _, id := range t.Dependencies {
		dep, ok := g.GetTarget(id)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrMissingDependency, "cannot resolve link input"), "target", t.Name.String())
			return nil, zerr.With(err, "dependency", id.String())
		}
		deps = append(deps, dep)
	}
	return LinkCommand(t, deps, tc)
}

func parentDirs(path string) []string {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	return []string{dir}
}
