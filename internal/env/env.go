// Package env reads prepush settings from the process environment.
package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidBool is returned when a string cannot be parsed as a boolean.
var ErrInvalidBool = errors.New("invalid boolean value")

// ParseBool interprets a string as a boolean.
// It trims surrounding whitespace and ignores case before matching.
//
// Accepted values:
//   - "true", "yes", "on", "1"  -> true
//   - "false", "no", "off", "0" -> false
//   - "" (empty)                -> false, nil error
//   - any other non-empty       -> false, ErrInvalidBool
func ParseBool(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBool, value)
	}
}

// LookupString returns the value of envVar and whether it is set to a
// non-empty value.
func LookupString(envVar string) (string, bool) {
	v, ok := os.LookupEnv(envVar)
	return v, ok && v != ""
}

// LookupBool reads envVar as a boolean. The second result is false when the
// variable is unset, empty or not a recognised boolean, in which case the
// caller keeps its current value.
func LookupBool(envVar string) (bool, bool) {
	v, ok := LookupString(envVar)
	if !ok {
		return false, false
	}

	b, err := ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
