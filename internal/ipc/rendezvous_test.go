package ipc

import "testing"

func TestNameDefaultsPrefix(t *testing.T) {
	if got, want := Name("", 1234), "wpf_inspector_1234"; got != want {
		t.Errorf("Name(\"\", 1234) = %q, want %q", got, want)
	}
}

func TestNameHonorsPrefix(t *testing.T) {
	if got, want := Name("myapp", 42), "myapp_42"; got != want {
		t.Errorf("Name(myapp, 42) = %q, want %q", got, want)
	}
}
