package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.ResolvedRendezvousPrefix(); got != DefaultRendezvousPrefix {
		t.Errorf("ResolvedRendezvousPrefix() = %q, want %q", got, DefaultRendezvousPrefix)
	}
	if got := c.ResolvedMarshalTimeout(); got != DefaultMarshalTimeout {
		t.Errorf("ResolvedMarshalTimeout() = %v, want %v", got, DefaultMarshalTimeout)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspector.yaml")
	body := `
rendezvous_prefix: myapp
endpoint:
  marshal_timeout_ms: 500
  binding_error_buffer_size: 50
bridge:
  connect_timeout_ms: 1000
  request_timeout_ms: 2000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := c.ResolvedRendezvousPrefix(), "myapp"; got != want {
		t.Errorf("ResolvedRendezvousPrefix() = %q, want %q", got, want)
	}
	if got, want := c.ResolvedMarshalTimeout(), 500*time.Millisecond; got != want {
		t.Errorf("ResolvedMarshalTimeout() = %v, want %v", got, want)
	}
	if got, want := c.ResolvedBindingErrorBufferSize(), 50; got != want {
		t.Errorf("ResolvedBindingErrorBufferSize() = %d, want %d", got, want)
	}
	if got, want := c.ResolvedConnectTimeout(), time.Second; got != want {
		t.Errorf("ResolvedConnectTimeout() = %v, want %v", got, want)
	}
	if got, want := c.ResolvedRequestTimeout(), 2*time.Second; got != want {
		t.Errorf("ResolvedRequestTimeout() = %v, want %v", got, want)
	}
	// Untouched field still falls back to its default.
	if got, want := c.ResolvedNotificationQueueDepth(), DefaultNotificationQueueDepth; got != want {
		t.Errorf("ResolvedNotificationQueueDepth() = %d, want %d", got, want)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("not: valid: yaml: at: all:"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error parsing malformed YAML")
	}
}
