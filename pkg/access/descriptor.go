package access

import "strings"

// Descriptor is the opaque, immutable identity of one node of the
// plugin namespace: the path the resolver will be asked to expand, the
// queued user-interaction answers, and the preference configuration in
// effect. It is never mutated after construction and is safe to share
// by reference across concurrent crawl workers.
type Descriptor struct {
	Path   string
	Inputs []string
	Config Config
}

// New builds a Descriptor from a raw path, a colon-separated,
// percent-encoded input string (as produced by EncodeInputs, may be
// empty) and a Config.
func New(path string, rawInputs string, config Config) Descriptor {
	return Descriptor{
		Path:   path,
		Inputs: DecodeInputs(rawInputs),
		Config: config,
	}
}

// TryNew is a shortcut for New for callers that only conditionally
// have a path: it returns (Descriptor{}, false) when path is empty.
func TryNew(path string, rawInputs string, config Config) (Descriptor, bool) {
	if path == "" {
		return Descriptor{}, false
	}
	return New(path, rawInputs, config), true
}

// CacheKey returns a string that uniquely identifies this Descriptor
// for use as a map key: the cache (pkg/cache) and the underlying LRU
// implementation it builds on require a comparable, hashable key, but
// Descriptor itself contains slices and so cannot be used as a Go map
// key directly. The key is not meant to be decoded; it only needs to
// be injective over (Path, Inputs, Config), which per spec.md §3 means
// covering all three of Config's preference lists exactly, including
// each list's NoInherit flag: EncodeURI alone drops NoInherit, since
// that flag is meaningless once persisted to a reproducer command
// line (it's always cleared by the time a merge completes).
func (d Descriptor) CacheKey() string {
	var b strings.Builder
	b.WriteString(d.Path)
	b.WriteByte(0)
	for _, in := range d.Inputs {
		b.WriteString(in)
		b.WriteByte(0)
	}
	b.WriteByte(0)
	b.WriteString(d.Config.EncodeURI())
	b.WriteByte(0)
	b.WriteRune(noInheritByte(d.Config.Language.NoInherit))
	b.WriteRune(noInheritByte(d.Config.Resolution.NoInherit))
	b.WriteRune(noInheritByte(d.Config.Format.NoInherit))
	return b.String()
}

func noInheritByte(set bool) rune {
	if set {
		return '1'
	}
	return '0'
}

// Equal reports whether two descriptors carry the same path, the same
// ordered inputs and an equivalent configuration.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.CacheKey() == other.CacheKey()
}
