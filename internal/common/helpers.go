package common

import (
	"encoding/hex"
	"regexp"
)

var hexPattern = regexp.MustCompile(`^([0-9a-fA-F]{2})+$`)

// IsHex reports whether s is a non-empty, even-length hex string.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// IsHexOfLen reports whether s is hex encoding exactly n bytes.
func IsHexOfLen(s string, n int) bool {
	return len(s) == n*2 && IsHex(s)
}

// DecodeHex decodes s, returning a ValidationError naming field on failure.
func DecodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return nil, &ValidationError{Message: "invalid " + field}
	}
	return b, nil
}

// Concat joins byte slices into a freshly allocated slice.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
