package analyzer

import (
	"testing"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func TestParseTraceLine(t *testing.T) {
	line := `System.Windows.Data Error: 40 : BindingExpression path error: 'Name' property not found on 'object' ''MainViewModel' (HashCode=1)'. BindingExpression:Path=Name; DataItem='MainViewModel' (HashCode=1); target element is 'TextBlock' (Name='NameLabel'); target property is 'Text' (type 'String')`

	rec := ParseTraceLine(line, "2026-08-01T00:00:00Z")

	if rec.ErrorType != wire.ErrTypePathError {
		t.Errorf("ErrorType = %v, want PathError", rec.ErrorType)
	}
	if rec.ElementType != "TextBlock" {
		t.Errorf("ElementType = %q, want TextBlock", rec.ElementType)
	}
	if rec.ElementName != "NameLabel" {
		t.Errorf("ElementName = %q, want NameLabel", rec.ElementName)
	}
	if rec.Property != "Text" {
		t.Errorf("Property = %q, want Text", rec.Property)
	}
	if rec.BindingPath != "Name" {
		t.Errorf("BindingPath = %q, want Name", rec.BindingPath)
	}
}

func TestClassifyFallsBackToUnknown(t *testing.T) {
	rec := ParseTraceLine("some unrelated diagnostic line", "t")
	if rec.ErrorType != wire.ErrTypeUnknown {
		t.Errorf("ErrorType = %v, want Unknown", rec.ErrorType)
	}
}

func TestClassifyEachMarker(t *testing.T) {
	tests := []struct {
		line string
		want wire.BindingErrorType
	}{
		{"Cannot find source for binding", wire.ErrTypeSourceNotFound},
		{"BindingExpression path error: oops", wire.ErrTypePathError},
		{"Cannot convert value", wire.ErrTypeConversionError},
		{"ValidationError occurred", wire.ErrTypeValidationError},
		{"UpdateSourceExceptionFilter returned", wire.ErrTypeUpdateSourceError},
	}
	for _, tt := range tests {
		got := classify(tt.line)
		if got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestBindingErrorBufferDropsOldestOnOverflow(t *testing.T) {
	b := NewBindingErrorBuffer(2)
	b.Push(wire.BindingErrorRecord{Message: "first"})
	b.Push(wire.BindingErrorRecord{Message: "second"})
	b.Push(wire.BindingErrorRecord{Message: "third"})

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len(snap) = %d, want 2", len(snap))
	}
	if snap[0].Message != "second" || snap[1].Message != "third" {
		t.Errorf("snap = %+v, want [second third]", snap)
	}
}
