package domain

import (
	"regexp"
	"unique"
)

var identityPattern = regexp.MustCompile(`^[A-Za-z0-9_.+/-]+$`)

// Identity is the interned, human-readable name of a target.
// It is used as the graph key, the build cache key, and in diagnostics.
type Identity struct {
	h unique.Handle[string]
}

// NewIdentity creates a new Identity from a string.
func NewIdentity(s string) Identity {
	return Identity{
		h: unique.Make(s),
	}
}

// NewIdentities creates a new Identity slice from a string slice.
func NewIdentities(s []string) []Identity {
	res := make([]Identity, len(s))
	for i, s := range s {
		res[i] = NewIdentity(s)
	}
	return res
}

// IsZero reports whether the identity was never set.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Valid reports whether the identity is a usable target name.
func (id Identity) Valid() bool {
	return !id.IsZero() && identityPattern.MatchString(id.String())
}

// String returns the underlying string value.
func (id Identity) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = Identity{}
		return nil
	}
	id.h = unique.Make(string(text))
	return nil
}

// Strings converts identities back to plain strings.
func Strings(ids []Identity) []string {
	res := make([]string, len(ids))
	for i, id := range ids {
		res[i] = id.String()
	}
	return res
}
