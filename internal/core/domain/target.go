package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Kind classifies a target by the artifact it produces.
type Kind int

const (
	// KindUnknown is the zero value and never describes a valid target.
	KindUnknown Kind = iota
	// KindCompile produces one object file from one source file.
	KindCompile
	// KindLink produces a binary from the objects of its dependencies.
	KindLink
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindCompile:
		return "compile"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Target is a node of the build graph.
// Exactly one of Source and Output is set; the kind is derived from which one.
type Target struct {
	Name Identity
	// Source is the translation unit of a compile target.
	Source string
	// Output is the binary path of a link target.
	Output string
	// Dependencies are built before the target, in declared order.
	// For link targets the order is also the order of objects on the link line.
	Dependencies []Identity
}

// Kind classifies the target structurally and reports a configuration error
// when the declaration fits neither kind.
func (t *Target) Kind() (Kind, error) {
	hasSource := t.Source != ""
	hasOutput := t.Output != ""

	switch {
	case hasSource && strings.TrimSpace(t.Source) == "":
		return KindUnknown, zerr.With(zerr.Wrap(ErrEmptySource, "cannot classify target"), "target", t.Name.String())
	case hasOutput && strings.TrimSpace(t.Output) == "":
		return KindUnknown, zerr.With(zerr.Wrap(ErrEmptyOutput, "cannot classify target"), "target", t.Name.String())
	case hasSource && hasOutput:
		return KindUnknown, zerr.With(zerr.Wrap(ErrAmbiguousTarget, "cannot classify target"), "target", t.Name.String())
	case hasSource:
		return KindCompile, nil
	case hasOutput:
		if len(t.Dependencies) == 0 {
			return KindUnknown, zerr.With(zerr.Wrap(ErrEmptyLinkInputs, "cannot classify target"), "target", t.Name.String())
		}
		return KindLink, nil
	default:
		return KindUnknown, zerr.With(zerr.Wrap(ErrUnclassifiedTarget, "cannot classify target"), "target", t.Name.String())
	}
}

// Clone returns a copy of the target that shares no slices with the original.
func (t Target) Clone() Target {
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}
