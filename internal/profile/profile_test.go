package profile

import (
	"path/filepath"
	"testing"
	"time"
)

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{
		Mode:   "invalid-mode",
		Data:   dir,
		Driver: "sqlite",
	}

	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	if p.Mode != "demo" {
		t.Errorf("mode = %q, want demo fallback", p.Mode)
	}
	if want := filepath.Join(dir, "constellation_demo.db"); p.DSN != want {
		t.Errorf("dsn = %q, want %q", p.DSN, want)
	}
	if p.TickInterval != 50*time.Millisecond {
		t.Errorf("tick interval = %v, want 50ms", p.TickInterval)
	}
	if p.MergeThreshold != 0.30 {
		t.Errorf("merge threshold = %v, want 0.30", p.MergeThreshold)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{
		Mode:           "dev",
		Data:           dir,
		Driver:         "postgres",
		DSN:            "postgresql://localhost/constellation",
		TickInterval:   time.Second,
		MergeThreshold: 0.15,
	}

	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	if p.DSN != "postgresql://localhost/constellation" {
		t.Errorf("dsn overwritten: %q", p.DSN)
	}
	if p.TickInterval != time.Second || p.MergeThreshold != 0.15 {
		t.Errorf("explicit tuning overwritten: %v %v", p.TickInterval, p.MergeThreshold)
	}
}

func TestValidateMissingDataDir(t *testing.T) {
	p := &Profile{
		Mode: "dev",
		Data: "/nonexistent/constellation-data",
	}
	if err := p.Validate(); err == nil {
		t.Error("expected error for missing data dir")
	}
}

func TestIsAIEnabled(t *testing.T) {
	p := &Profile{AIEnabled: true}
	if p.IsAIEnabled() {
		t.Error("enabled without key should report disabled")
	}
	p.AIAPIKey = "sk-test"
	if !p.IsAIEnabled() {
		t.Error("enabled with key should report enabled")
	}
}
