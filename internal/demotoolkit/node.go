// Package demotoolkit supplies a synthetic, in-memory adapter.Adapter so
// the inspector endpoint, the controller bridge, and cmd/inspector-demo
// can all run against a realistic UI-object graph without an actual WPF
// process. Its node-builder functions follow a plain factory-function
// style, producing a live, mutable object graph a test can attach
// properties, bindings, and layout to.
package demotoolkit

import "sync"

// Node is one synthetic element: a window, panel, or control. It is the
// concrete type behind adapter.Node for this toolkit.
type Node struct {
	mu sync.Mutex

	typeName string
	name     string
	parent   *Node
	visual   []*Node
	logical  []*Node

	properties map[string]*property
	binding    map[string]*Binding
	layout     *Layout
	resources  map[string]Resource
	style      *Style

	changeSubs map[string][]func(any)
}

type property struct {
	value  any
	source string // matches wire.ValueSource string values
}

// Layout is the raw layout metrics demotoolkit reports for a renderable
// node.
type Layout struct {
	ActualWidth, ActualHeight float64
	DesiredW, DesiredH        float64
	RenderW, RenderH          float64
	MarginL, MarginT, MarginR, MarginB float64
	HorizontalAlignment, VerticalAlignment string
	Visibility                             string
}

// Resource is one resource-dictionary entry attached at a node's scope.
type Resource struct {
	Key, TypeName, Source, TargetType string
	Value                             any
}

// Style is the synthetic style data attached to a node.
type Style struct {
	Key, TargetType, BasedOn string
	Setters                  map[string]any
	ImplicitStyleExists      bool
}

// Binding is the synthetic binding metadata SetBinding attaches to a
// property, covering the fields analyzer.DeriveSource and
// analyzer.BindingDetails read off adapter.BindingInfo.
type Binding struct {
	Path               string
	ExplicitSource     string
	ElementName        string
	RelativeSourceMode string
	Mode               string
	UpdateTrigger      string
	Converter          string
	Status             string
	HasError           bool
	ErrorMessage       string
}


// Window creates a root node with no parent, typically passed into
// Toolkit.AddRoot.
func Window(name string) *Node {
	return New("Window", name)
}

// New creates a detached node of typeName, optionally named.
func New(typeName, name string) *Node {
	return &Node{
		typeName:   typeName,
		name:       name,
		properties: make(map[string]*property),
		binding:    make(map[string]*Binding),
		resources:  make(map[string]Resource),
		changeSubs: make(map[string][]func(any)),
	}
}

// AddVisualChild appends child to node's visual and logical children and
// sets child's parent, the common case for controls that are both their
// own visual and logical container (the demo toolkit does not model the
// visual/logical divergence a real template does).
func (n *Node) AddVisualChild(child *Node) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	child.parent = n
	n.visual = append(n.visual, child)
	n.logical = append(n.logical, child)
	return n
}

// SetProperty stores value for name with the given value source.
func (n *Node) SetProperty(name string, value any, source string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.properties[name] = &property{value: value, source: source}
	return n
}

// SetLayout attaches layout metrics, making the node renderable.
func (n *Node) SetLayout(l Layout) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.layout = &l
	return n
}

// SetBinding attaches binding metadata to name.
func (n *Node) SetBinding(name string, b Binding) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	cp := b
	n.binding[name] = &cp
	return n
}

// AddResource attaches a resource-dictionary entry scoped to this node.
func (n *Node) AddResource(key string, r Resource) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	r.Key = key
	n.resources[key] = r
	return n
}

// SetStyle attaches style data to this node.
func (n *Node) SetStyle(s Style) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style = &s
	return n
}

// ChangeProperty updates name's value and invokes every subscriber
// registered via the adapter's SubscribePropertyChange for name.
func (n *Node) ChangeProperty(name string, value any) {
	n.mu.Lock()
	p, ok := n.properties[name]
	if !ok {
		p = &property{source: "Local"}
		n.properties[name] = p
	}
	p.value = value
	subs := append([]func(any){}, n.changeSubs[name]...)
	n.mu.Unlock()

	for _, cb := range subs {
		cb(value)
	}
}
