// Package adapter declares the Toolkit Adapter boundary: the interface an
// inspector endpoint programs against instead of depending on a specific
// UI framework's API directly. A WPF host binds a concrete Adapter at
// startup; internal/demotoolkit supplies a synthetic one used by tests and
// the inspector-demo command.
package adapter

import "github.com/faze79/WPFVisualTreeMcp/pkg/wire"

// Node is a live object in the target's UI-object graph. It is opaque to
// everything outside the Adapter implementation: the endpoint never
// inspects it directly, only passes it back into Adapter methods and into
// the handle registry. Concrete adapters typically use a pointer type as
// Node so identity comparison (==) means node identity.
type Node = any

// PropertyDescriptor names one property an adapter can read off a node,
// without yet reading its value.
type PropertyDescriptor struct {
	Name         string
	DeclaredType string
}

// BindingInfo is what an adapter reports about one property's live data
// binding. ExplicitSource, ElementName and RelativeSourceMode are the raw
// pieces the
// analyzer assembles into BindingRecord.Source, ranked explicit source
// object -> ElementName(n) -> RelativeSource(mode) -> DataContext.
type BindingInfo struct {
	Path               string
	ExplicitSource     string // non-empty if bound to an explicit source object
	ElementName        string // non-empty if ElementName binding
	RelativeSourceMode string // non-empty if RelativeSource binding
	Mode               wire.BindingMode
	UpdateTrigger      string
	Converter          string
	Status             wire.BindingStatus
	HasError           bool
	ErrorMessage       string
	CurrentValue       any
}

// Thickness is a raw left/top/right/bottom composite value, the shape
// WPF uses for Margin, Padding, and BorderThickness. The analyzer formats
// it as "(l,t,r,b)".
type Thickness struct{ L, T, R, B float64 }

// Color is a raw ARGB color value. The analyzer formats it as
// "#AARRGGBB" upper-hex.
type Color struct{ A, R, G, B uint8 }

// LayoutInfo is the raw layout data for one renderable node.
type LayoutInfo struct {
	ActualWidth         float64
	ActualHeight        float64
	DesiredW, DesiredH  float64
	RenderW, RenderH    float64
	Margin              Thickness
	Padding             *Thickness // nil if node has no padding concept
	HorizontalAlignment string
	VerticalAlignment   string
	Visibility          string
}

// ResourceInfo is one resource-dictionary entry.
type ResourceInfo struct {
	Key        string
	TypeName   string
	Value      any
	Source     string
	TargetType string
}

// Setter is one raw property/value pair applied by a style.
type Setter struct {
	Property string
	Value    any
}

// StyleInfo is the raw style data for one node.
type StyleInfo struct {
	Key                 string
	TargetType          string
	BasedOn             string
	Setters             []Setter
	Triggers            []wire.StyleTrigger
	ImplicitStyleExists bool
}

// SubscriptionToken identifies a live property-change subscription so it
// can be torn down later.
type SubscriptionToken any

// ChangeCallback is invoked by the adapter on its own thread of choice
// (typically the UI thread) whenever a subscribed property changes. The
// raw value is formatted by the analyzer, the same as ReadProperty's.
type ChangeCallback func(newValue any)

// TraceSink receives raw textual lines off the framework's binding
// diagnostic channel, one call per line, in emission order.
type TraceSink func(line string)

// ResourceScope mirrors wire.ResourceScope; kept distinct so this package
// has no compile-time need to special-case wire's JSON tags.
type ResourceScope = wire.ResourceScope

// Adapter abstracts the UI framework. All methods that touch live UI
// objects are expected to run on the UI thread; the endpoint enforces
// that by only ever calling them from inside the UI-thread marshaler.
type Adapter interface {
	// RootNodes returns the ordered sequence of primary windows/top-level
	// surfaces currently open in the process.
	RootNodes() []Node

	// ChildrenVisual returns the ordered visual children of node.
	ChildrenVisual(node Node) []Node

	// ChildrenLogical returns the ordered logical children of node.
	ChildrenLogical(node Node) []Node

	// Parent returns the visual parent of node, or nil if node is a root.
	Parent(node Node) Node

	// TypeName returns the fully-qualified runtime type name of node.
	TypeName(node Node) string

	// ShortTypeName returns the unqualified runtime type name of node.
	ShortTypeName(node Node) string

	// Name returns node's framework name and whether it has one.
	Name(node Node) (string, bool)

	// Properties enumerates the properties declared on node.
	Properties(node Node) []PropertyDescriptor

	// ReadProperty reads the current raw value, value source, and whether
	// the property currently holds an active data binding. The raw value
	// is framework-typed (string, bool, a numeric kind, Thickness, Color,
	// or any other Go value with a usable String()/%v form); formatting it
	// into the normalized wire string is the analyzer's job, not the
	// adapter's.
	ReadProperty(node Node, name string) (value any, source wire.ValueSource, isBinding bool, err error)

	// Binding returns binding metadata for name on node, or nil if the
	// property has no active binding expression.
	Binding(node Node, name string) (*BindingInfo, error)

	// Layout returns layout metrics for node. Returns an error for nodes
	// that have no layout (e.g. non-visual data objects).
	Layout(node Node) (*LayoutInfo, error)

	// Resources returns the resources visible at scope, rooted at node
	// (node is ignored for ScopeApplication).
	Resources(scope ResourceScope, node Node) []ResourceInfo

	// Style returns the active style applied to node, or nil if none.
	Style(node Node) (*StyleInfo, error)

	// SubscribePropertyChange registers cb to be invoked whenever name
	// changes on node. Returns PropertyNotFound-classified error (see
	// ErrPropertyNotFound) if name is not a property of node.
	SubscribePropertyChange(node Node, name string, cb ChangeCallback) (SubscriptionToken, error)

	// Unsubscribe tears down a subscription created by
	// SubscribePropertyChange.
	Unsubscribe(token SubscriptionToken)

	// Highlight paints a topmost, hit-test-invisible, translucent
	// rectangle over node's screen bounds for durationMs, then removes it.
	// Returns immediately; the paint/removal happens asynchronously.
	Highlight(node Node, durationMs int) error

	// AttachBindingTraceSink subscribes sink to the framework's binding
	// diagnostic channel and returns a function that detaches it.
	AttachBindingTraceSink(sink TraceSink) (detach func())
}

// ErrPropertyNotFound is returned by ReadProperty and
// SubscribePropertyChange when name is not declared on node.
var ErrPropertyNotFound = propertyNotFoundError{}

type propertyNotFoundError struct{}

func (propertyNotFoundError) Error() string { return "adapter: property not found" }

// ErrNotRenderable is returned by Layout when node has no layout.
var ErrNotRenderable = notRenderableError{}

type notRenderableError struct{}

func (notRenderableError) Error() string { return "adapter: node is not renderable" }
