package analyzer

import (
	"strings"
	"sync"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// ParseTraceLine extracts what it can from one line of the framework's
// binding diagnostic trace using the framework's stable textual markers.
// The exact probes are an implementation choice; only the resulting
// ErrorType classification is contracted.
func ParseTraceLine(line string, now string) wire.BindingErrorRecord {
	rec := wire.BindingErrorRecord{
		Message:      line,
		TimestampUTC: now,
		ErrorType:    classify(line),
	}
	rec.ElementType = extractBetween(line, "target element is '", "'")
	rec.ElementName = extractBetween(line, "(Name='", "')")
	rec.Property = extractBetween(line, "target property is '", "'")
	rec.BindingPath = extractAfter(line, "Path=")
	return rec
}

// classify matches an ordered list of substring probes, falling back to
// Unknown.
func classify(line string) wire.BindingErrorType {
	switch {
	case strings.Contains(line, "Cannot find source"):
		return wire.ErrTypeSourceNotFound
	case strings.Contains(line, "path error"):
		return wire.ErrTypePathError
	case strings.Contains(line, "Cannot convert"):
		return wire.ErrTypeConversionError
	case strings.Contains(line, "ValidationError"):
		return wire.ErrTypeValidationError
	case strings.Contains(line, "UpdateSourceExceptionFilter"):
		return wire.ErrTypeUpdateSourceError
	default:
		return wire.ErrTypeUnknown
	}
}

func extractBetween(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return ""
	}
	return rest[:j]
}

func extractAfter(s, marker string) string {
	i := strings.Index(s, marker)
	if i < 0 {
		return ""
	}
	rest := s[i+len(marker):]
	// Path=... runs to the next ';' or ')', or to end of line, in WPF's
	// trace format.
	if j := strings.IndexAny(rest, ";)"); j >= 0 {
		return strings.TrimSpace(rest[:j])
	}
	return strings.TrimSpace(rest)
}

// DefaultBindingErrorBufferSize bounds the FIFO used when a caller does
// not specify its own capacity.
const DefaultBindingErrorBufferSize = 1000

// BindingErrorBuffer is a bounded FIFO of captured binding errors,
// dropping the oldest entry on overflow.
type BindingErrorBuffer struct {
	mu       sync.Mutex
	capacity int
	entries  []wire.BindingErrorRecord
}

// NewBindingErrorBuffer creates a buffer holding at most capacity entries.
func NewBindingErrorBuffer(capacity int) *BindingErrorBuffer {
	if capacity <= 0 {
		capacity = DefaultBindingErrorBufferSize
	}
	return &BindingErrorBuffer{capacity: capacity}
}

// Push appends rec, dropping the oldest entry if the buffer is full.
func (b *BindingErrorBuffer) Push(rec wire.BindingErrorRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= b.capacity {
		b.entries = b.entries[1:]
	}
	b.entries = append(b.entries, rec)
}

// Snapshot returns a copy of the buffer's current contents, oldest first.
func (b *BindingErrorBuffer) Snapshot() []wire.BindingErrorRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]wire.BindingErrorRecord, len(b.entries))
	copy(out, b.entries)
	return out
}
