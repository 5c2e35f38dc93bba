package main

import (
	"testing"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func TestThicknessString(t *testing.T) {
	got := thicknessString(wire.Thickness{L: 1, T: 2.5, R: 3, B: 4})
	want := "1.0,2.5,3.0,4.0"
	if got != want {
		t.Errorf("thicknessString = %q, want %q", got, want)
	}
}
