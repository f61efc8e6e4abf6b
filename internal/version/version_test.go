package version

import "testing"

func TestGetCurrentVersion(t *testing.T) {
	if got := GetCurrentVersion("dev"); got != DevVersion {
		t.Errorf("dev version = %q, want %q", got, DevVersion)
	}
	if got := GetCurrentVersion("demo"); got != DevVersion {
		t.Errorf("demo version = %q, want %q", got, DevVersion)
	}
	if got := GetCurrentVersion("prod"); got != Version {
		t.Errorf("prod version = %q, want %q", got, Version)
	}
}

func TestGetMinorVersion(t *testing.T) {
	if got := GetMinorVersion("0.3.1"); got != "v0.3" {
		t.Errorf("GetMinorVersion = %q, want v0.3", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"0.2.0", "0.3.0", -1},
		{"0.3.0", "0.3.0", 0},
		{"0.3.1", "0.3.0", 1},
		{"v0.3.0", "0.3.0", 0},
		{"1.0.0", "0.9.9", 1},
		{"", "0.0.0", 0},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.expected {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestIsVersionGreaterThan(t *testing.T) {
	if !IsVersionGreaterThan("0.3.1", "0.3.0") {
		t.Error("0.3.1 should be greater than 0.3.0")
	}
	if IsVersionGreaterThan("0.3.0", "0.3.0") {
		t.Error("equal versions are not greater")
	}
	if !IsVersionGreaterOrEqualThan("0.3.0", "0.3.0") {
		t.Error("equal versions are greater-or-equal")
	}
}
