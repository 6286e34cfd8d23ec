package version

import (
	"strings"
	"testing"
)

func TestCurrentIsValidSemver(t *testing.T) {
	v := Semver()
	if v.String() != Current {
		t.Errorf("parsed version wrong. expected=%q, got=%q", Current, v.String())
	}
}

func TestCompatibleWith(t *testing.T) {
	tests := []struct {
		constraint string
		expected   bool
	}{
		{">= 0.1.0", true},
		{"< 1.0.0", true},
		{">= 0.1, < 1.0", true},
		{">= 1.0.0", false},
	}

	for i, tt := range tests {
		ok, err := CompatibleWith(tt.constraint)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if ok != tt.expected {
			t.Fatalf("tests[%d] - result wrong. expected=%v, got=%v", i, tt.expected, ok)
		}
	}
}

func TestCompatibleWithBadConstraint(t *testing.T) {
	if _, err := CompatibleWith("not a constraint"); err == nil {
		t.Errorf("invalid constraint did not error")
	}
}

func TestString(t *testing.T) {
	if !strings.Contains(String(), Current) {
		t.Errorf("version line missing version: %q", String())
	}
}
