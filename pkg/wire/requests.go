package wire

// DefaultMaxDepth is applied when a tree-walk request omits maxDepth.
const DefaultMaxDepth = 10

// DefaultMaxResults is applied when FindElements omits maxResults.
const DefaultMaxResults = 50

// MaxResultsCeiling is the hard upper clamp on FindElements.maxResults.
const MaxResultsCeiling = 10000

// DefaultHighlightMs is applied when HighlightElement omits durationMs.
const DefaultHighlightMs = 2000

// GetVisualTreeRequest / GetLogicalTreeRequest share this shape.
type TreeRequest struct {
	RequestID  string `json:"requestId"`
	RootHandle string `json:"rootHandle,omitempty"`
	MaxDepth   *int   `json:"maxDepth,omitempty"`
}

// MaxDepthOrDefault returns MaxDepth if set, else DefaultMaxDepth.
func (r TreeRequest) MaxDepthOrDefault() int {
	if r.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return *r.MaxDepth
}

type GetElementPropertiesRequest struct {
	RequestID      string `json:"requestId"`
	ElementHandle  string `json:"elementHandle"`
}

type FindElementsRequest struct {
	RequestID      string            `json:"requestId"`
	RootHandle     string            `json:"rootHandle,omitempty"`
	TypeName       string            `json:"typeName,omitempty"`
	ElementName    string            `json:"elementName,omitempty"`
	PropertyFilter map[string]string `json:"propertyFilter,omitempty"`
	MaxResults     *int              `json:"maxResults,omitempty"`
}

// MaxResultsClamped returns maxResults clamped to [1, MaxResultsCeiling],
// defaulting to DefaultMaxResults when unset.
func (r FindElementsRequest) MaxResultsClamped() int {
	n := DefaultMaxResults
	if r.MaxResults != nil {
		n = *r.MaxResults
	}
	if n < 1 {
		n = 1
	}
	if n > MaxResultsCeiling {
		n = MaxResultsCeiling
	}
	return n
}

type GetBindingsRequest struct {
	RequestID     string `json:"requestId"`
	ElementHandle string `json:"elementHandle"`
}

type GetBindingErrorsRequest struct {
	RequestID string `json:"requestId"`
}

type GetResourcesRequest struct {
	RequestID     string        `json:"requestId"`
	Scope         ResourceScope `json:"scope"`
	ElementHandle string        `json:"elementHandle,omitempty"`
}

type GetStylesRequest struct {
	RequestID     string `json:"requestId"`
	ElementHandle string `json:"elementHandle"`
}

type HighlightElementRequest struct {
	RequestID     string `json:"requestId"`
	ElementHandle string `json:"elementHandle"`
	DurationMs    *int   `json:"durationMs,omitempty"`
}

// DurationOrDefault returns DurationMs if set, else DefaultHighlightMs.
func (r HighlightElementRequest) DurationOrDefault() int {
	if r.DurationMs == nil {
		return DefaultHighlightMs
	}
	return *r.DurationMs
}

type GetLayoutInfoRequest struct {
	RequestID     string `json:"requestId"`
	ElementHandle string `json:"elementHandle"`
}

type WatchPropertyRequest struct {
	RequestID     string `json:"requestId"`
	ElementHandle string `json:"elementHandle"`
	PropertyName  string `json:"propertyName"`
}

type ExportTreeRequest struct {
	RequestID     string       `json:"requestId"`
	ElementHandle string       `json:"elementHandle,omitempty"`
	Format        ExportFormat `json:"format"`
}
