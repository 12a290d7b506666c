package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/framegrace/texelpace/pace"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if len(p.BackoffMillis) != len(def.BackoffMillis) {
		t.Errorf("expected default backoff table, got %v", p.BackoffMillis)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelpace.json")
	if err := os.WriteFile(path, []byte(`{"backoff_millis":[5,10,20]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.BackoffMillis) != 3 || p.BackoffMillis[0] != 5 {
		t.Errorf("expected custom backoff table, got %v", p.BackoffMillis)
	}
	if len(p.ActivityChannels) == 0 {
		t.Error("expected default activity channels to survive a partial file")
	}
}

func TestLoadFrom_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelpace.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestPacing_BackoffTable(t *testing.T) {
	p := Pacing{BackoffMillis: []int{16, 33}}
	table := p.BackoffTable()
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}
	if table[0] != 16*time.Millisecond || table[1] != 33*time.Millisecond {
		t.Errorf("unexpected conversion: %v", table)
	}
}

func TestPacing_SignalMap(t *testing.T) {
	p := Pacing{
		ActivityChannels:   []string{"key-press", "not-a-channel"},
		QuiescenceChannels: []string{"focus-lost"},
		ResetChannels:      []string{"reload-reset"},
	}
	signals := p.SignalMap()

	if got := signals[pace.EventKeyPress]; got != pace.SignalActivity {
		t.Errorf("expected key-press -> activity, got %v", got)
	}
	if got := signals[pace.EventFocusLost]; got != pace.SignalQuiescence {
		t.Errorf("expected focus-lost -> quiescence, got %v", got)
	}
	if got := signals[pace.EventReloadReset]; got != pace.SignalReset {
		t.Errorf("expected reload-reset -> hard reset, got %v", got)
	}
	if len(signals) != 3 {
		t.Errorf("expected unknown channel skipped, got %d entries", len(signals))
	}
}

func TestDefault_ResolvesCleanly(t *testing.T) {
	signals := Default().SignalMap()
	if len(signals) != 10 {
		t.Errorf("expected every default channel to resolve, got %d", len(signals))
	}
}
