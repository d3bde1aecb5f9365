package errors

import (
	"math"
	"strings"
)

// ValidateHexColor checks that s is a CSS-style hex color: "#rgb" or "#rrggbb".
// The leading '#' is required so palette entries read the same in config files
// and in rendered output.
func ValidateHexColor(s string) error {
	if !strings.HasPrefix(s, "#") {
		return New(ErrCodeInvalidColor, "color %q must start with '#'", s)
	}
	digits := s[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return New(ErrCodeInvalidColor, "color %q must have 3 or 6 hex digits", s)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return New(ErrCodeInvalidColor, "color %q contains non-hex character %q", s, r)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// ValidatePositive checks that a named configuration value is finite and > 0.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative checks that a named configuration value is finite and >= 0.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", name, v)
	}
	return nil
}
