package access

import (
	"strings"
)

// percentEncode escapes every byte of s that isn't an ASCII letter or
// digit as %XX. This is deliberately stricter than net/url's escaping
// (which leaves "-_.~" untouched per RFC 3986): the wire format used by
// Descriptor.Config.EncodeURI and the input-list encoding reserve "!"
// and "." as structural separators, so every other non-alphanumeric
// byte, including those four, must round-trip unambiguously.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumeric(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigit(c >> 4))
		b.WriteByte(hexDigit(c & 0x0f))
	}
	return b.String()
}

func percentDecode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func hexDigit(n byte) byte {
	const digits = "0123456789ABCDEF"
	return digits[n&0x0f]
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// EncodeInputs turns an ordered list of user-interaction answers into
// a single colon-separated, percent-encoded string safe to embed in a
// URL or a reproducer argument.
func EncodeInputs(inputs []string) string {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = percentEncode(in)
	}
	return strings.Join(parts, ":")
}

// DecodeInputs is the inverse of EncodeInputs. An empty string decodes
// to an empty (not nil) slice.
func DecodeInputs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ":")
	result := make([]string, len(parts))
	for i, p := range parts {
		result[i] = percentDecode(p)
	}
	return result
}
