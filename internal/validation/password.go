package validation

import "unicode/utf8"

const MinPasswordLength = 8

const PasswordRuleMessage = "Password must be at least 8 characters and include an uppercase letter, a lowercase letter and a digit"

// ValidPassword requires at least eight characters with an ASCII upper-case
// letter, a lower-case letter and a digit.
func ValidPassword(s string) bool {
	return len(PasswordProblems(s)) == 0
}

// PasswordProblems lists every password rule s breaks, for form hints.
func PasswordProblems(s string) []string {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	var out []string
	if utf8.RuneCountInString(s) < MinPasswordLength {
		out = append(out, "Password must be at least 8 characters")
	}
	if !digit {
		out = append(out, "Must include a digit")
	}
	if !upper {
		out = append(out, "Must include an uppercase")
	}
	if !lower {
		out = append(out, "Must include a lowercase")
	}
	return out
}
