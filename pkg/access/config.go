package access

import "strings"

// PreferenceList is one ordered preference axis (language, resolution
// or format) together with the flag that lets a higher-priority config
// terminate inheritance from whatever configuration it is merged over.
type PreferenceList struct {
	Values []string
	// NoInherit, when set on the higher-priority side of a merge, drops
	// the lower-priority list's entries entirely instead of appending
	// them. The flag is always cleared on the merged result, so a
	// second merge on top of that result behaves normally again
	// (single-step veto, see DESIGN.md).
	NoInherit bool
}

// Config is the three independent ordered-preference lists a caller
// attaches to a Descriptor: language, resolution and format order.
type Config struct {
	Language   PreferenceList
	Resolution PreferenceList
	Format     PreferenceList
}

// ConfigFromFlags builds a Config from loosely-typed key/value pairs,
// the shape CLI flag parsing naturally produces. Recognized keys are
// "lang_ord", "res_ord" and "form_ord"; values are colon-separated.
// Unrecognized keys are silently ignored, matching the original
// UserConfig::new_from_dict.
func ConfigFromFlags(dict map[string]string) Config {
	split := func(v string) []string {
		if v == "" {
			return nil
		}
		return strings.Split(v, ":")
	}

	var cfg Config
	if v, ok := dict["lang_ord"]; ok {
		cfg.Language.Values = split(v)
	}
	if v, ok := dict["res_ord"]; ok {
		cfg.Resolution.Values = split(v)
	}
	if v, ok := dict["form_ord"]; ok {
		cfg.Format.Values = split(v)
	}
	return cfg
}

// Merge combines a higher-priority config (the receiver) with a
// lower-priority one, returning a config where each preference list
// has been merged according to the no-inherit rule: if the
// higher-priority list carries NoInherit, the lower-priority entries
// are dropped (and the flag cleared); otherwise the lower-priority
// entries are appended after the higher-priority ones. Duplicates are
// then removed, preserving first-occurrence order.
//
// Merge is not commutative: higher.Merge(lower) is not the same as
// lower.Merge(higher). It is associative when no NoInherit flag is
// set; because the flag is cleared after the one merge it takes part
// in, grouping changes the result when one is set.
func (higher Config) Merge(lower Config) Config {
	return Config{
		Language:   mergeList(higher.Language, lower.Language),
		Resolution: mergeList(higher.Resolution, lower.Resolution),
		Format:     mergeList(higher.Format, lower.Format),
	}
}

func mergeList(higher, lower PreferenceList) PreferenceList {
	var merged []string
	merged = append(merged, higher.Values...)
	if !higher.NoInherit {
		merged = append(merged, lower.Values...)
	}
	return PreferenceList{Values: dedup(merged)}
}

func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// EncodeURI serializes the three preference lists into a URI-safe
// string: entries are "key.value" pairs separated by "!", with every
// non-alphanumeric byte of the key or value percent-encoded. Empty
// lists are omitted entirely, so a default Config encodes to "".
func (c Config) EncodeURI() string {
	var parts []string
	add := func(key string, list PreferenceList) {
		for _, v := range list.Values {
			parts = append(parts, percentEncode(key)+"."+percentEncode(v))
		}
	}
	add("language_order", c.Language)
	add("resolution_order", c.Resolution)
	add("format_order", c.Format)
	return strings.Join(parts, "!")
}

// DecodeConfigURI parses the format produced by Config.EncodeURI.
// Malformed entries (missing the "." separator, or an unrecognized
// key) are skipped rather than treated as a fatal error, since this
// string is meant to survive hand-editing in a reproducer command.
func DecodeConfigURI(raw string) Config {
	var cfg Config
	if raw == "" {
		return cfg
	}
	for _, entry := range strings.Split(raw, "!") {
		key, value, ok := strings.Cut(entry, ".")
		if !ok {
			continue
		}
		key, value = percentDecode(key), percentDecode(value)
		switch key {
		case "language_order":
			cfg.Language.Values = append(cfg.Language.Values, value)
		case "resolution_order":
			cfg.Resolution.Values = append(cfg.Resolution.Values, value)
		case "format_order":
			cfg.Format.Values = append(cfg.Format.Values, value)
		}
	}
	return cfg
}
