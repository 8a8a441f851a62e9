package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"short1A", false},
		{"longenough1", false},
		{"LongEnough1", true},
		{"LONGENOUGH1", false},
		{"LongEnough", false},
		{"Passw0rd!", true},
		{"", false},
		{"Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1Ab1", true},
	}
	for _, tt := range tests {
		if got := ValidPassword(tt.in); got != tt.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"LongEnough1", nil},
		{"password", []string{"Must include a digit", "Must include an uppercase"}},
		{"aB1", []string{"Password must be at least 8 characters"}},
		{"", []string{
			"Password must be at least 8 characters",
			"Must include a digit",
			"Must include an uppercase",
			"Must include a lowercase",
		}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, PasswordProblems(tt.in)); diff != "" {
			t.Errorf("PasswordProblems(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
