package validation

import (
	"regexp"
	"strings"
)

// The local part may not start with a dot or contain "..". RE2 has no
// lookahead, so those two rules are checked outside the pattern.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+\-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)

// ValidEmail reports whether s matches the accepted address grammar.
// It does not normalize; callers pass NormalizeEmail(s).
func ValidEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}
