package atomcss

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed configuration entry. It is only ever
// returned while building a Config or Engine, never while resolving classes.
type ConfigurationError struct {
	Name   string // Utility, class or variant the problem belongs to
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %q: %s", e.Name, e.Reason)
}

func configErr(name, reason string) error {
	return &ConfigurationError{Name: name, Reason: reason}
}

// AmbiguousMatchError reports a name registered more than once in a way the
// longest-match rule cannot disambiguate.
type AmbiguousMatchError struct {
	Name    string
	Sources []string // e.g. "property", "classes"
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous utility %q registered in %s", e.Name, strings.Join(e.Sources, " and "))
}
