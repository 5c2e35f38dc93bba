package demotoolkit

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// Toolkit is a synthetic adapter.Adapter implementation backed by Node.
// cmd/inspector-demo constructs one, populates it with AddRoot/Node
// builder calls, and passes it to pkg/inspector.New.
type Toolkit struct {
	mu    sync.Mutex
	roots []*Node
}

// NewToolkit returns an empty synthetic adapter.
func NewToolkit() *Toolkit { return &Toolkit{} }

// AddRoot registers root as a top-level window.
func (t *Toolkit) AddRoot(root *Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roots = append(t.roots, root)
}

func asNode(n adapter.Node) *Node {
	node, ok := n.(*Node)
	if !ok || node == nil {
		return nil
	}
	return node
}

func (t *Toolkit) RootNodes() []adapter.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]adapter.Node, len(t.roots))
	for i, r := range t.roots {
		out[i] = r
	}
	return out
}

func (t *Toolkit) ChildrenVisual(n adapter.Node) []adapter.Node {
	node := asNode(n)
	if node == nil {
		return nil
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	out := make([]adapter.Node, len(node.visual))
	for i, c := range node.visual {
		out[i] = c
	}
	return out
}

func (t *Toolkit) ChildrenLogical(n adapter.Node) []adapter.Node {
	node := asNode(n)
	if node == nil {
		return nil
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	out := make([]adapter.Node, len(node.logical))
	for i, c := range node.logical {
		out[i] = c
	}
	return out
}

func (t *Toolkit) Parent(n adapter.Node) adapter.Node {
	node := asNode(n)
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (t *Toolkit) TypeName(n adapter.Node) string {
	node := asNode(n)
	if node == nil {
		return ""
	}
	return "DemoToolkit." + node.typeName
}

func (t *Toolkit) ShortTypeName(n adapter.Node) string {
	node := asNode(n)
	if node == nil {
		return ""
	}
	return node.typeName
}

func (t *Toolkit) Name(n adapter.Node) (string, bool) {
	node := asNode(n)
	if node == nil || node.name == "" {
		return "", false
	}
	return node.name, true
}

func (t *Toolkit) Properties(n adapter.Node) []adapter.PropertyDescriptor {
	node := asNode(n)
	if node == nil {
		return nil
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	out := make([]adapter.PropertyDescriptor, 0, len(node.properties))
	for name, p := range node.properties {
		out = append(out, adapter.PropertyDescriptor{Name: name, DeclaredType: fmt.Sprintf("%T", p.value)})
	}
	return out
}

func (t *Toolkit) ReadProperty(n adapter.Node, name string) (any, wire.ValueSource, bool, error) {
	node := asNode(n)
	if node == nil {
		return nil, "", false, adapter.ErrPropertyNotFound
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	p, ok := node.properties[name]
	if !ok {
		return nil, "", false, adapter.ErrPropertyNotFound
	}
	_, hasBinding := node.binding[name]
	return p.value, wire.ValueSource(p.source), hasBinding, nil
}

func (t *Toolkit) Binding(n adapter.Node, name string) (*adapter.BindingInfo, error) {
	node := asNode(n)
	if node == nil {
		return nil, adapter.ErrPropertyNotFound
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	b, ok := node.binding[name]
	if !ok {
		return nil, nil
	}
	var currentValue any
	if p, ok := node.properties[name]; ok {
		currentValue = p.value
	}
	return &adapter.BindingInfo{
		Path:               b.Path,
		ExplicitSource:     b.ExplicitSource,
		ElementName:        b.ElementName,
		RelativeSourceMode: b.RelativeSourceMode,
		Mode:               wire.BindingMode(b.Mode),
		UpdateTrigger:      b.UpdateTrigger,
		Converter:          b.Converter,
		Status:             wire.BindingStatus(b.Status),
		HasError:           b.HasError,
		ErrorMessage:       b.ErrorMessage,
		CurrentValue:       currentValue,
	}, nil
}

func (t *Toolkit) Layout(n adapter.Node) (*adapter.LayoutInfo, error) {
	node := asNode(n)
	if node == nil || node.layout == nil {
		return nil, adapter.ErrNotRenderable
	}
	l := node.layout
	return &adapter.LayoutInfo{
		ActualWidth:         l.ActualWidth,
		ActualHeight:        l.ActualHeight,
		DesiredW:            l.DesiredW,
		DesiredH:            l.DesiredH,
		RenderW:             l.RenderW,
		RenderH:             l.RenderH,
		Margin:              adapter.Thickness{L: l.MarginL, T: l.MarginT, R: l.MarginR, B: l.MarginB},
		HorizontalAlignment: l.HorizontalAlignment,
		VerticalAlignment:   l.VerticalAlignment,
		Visibility:          l.Visibility,
	}, nil
}

// ancestorResources walks upward from node to its containing root,
// merging resources from every ancestor level (nearest scope winning on
// key collision), sorted ascending by key.
func ancestorResources(node *Node) []adapter.ResourceInfo {
	var out []adapter.ResourceInfo
	seen := make(map[string]bool)
	for cur := node; cur != nil; cur = cur.parent {
		cur.mu.Lock()
		for key, r := range cur.resources {
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, adapter.ResourceInfo{Key: r.Key, TypeName: r.TypeName, Value: r.Value, Source: r.Source, TargetType: r.TargetType})
		}
		cur.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// applicationResources merges resources declared on every root (nearest,
// i.e. first-added, root winning on key collision), sorted ascending by
// key.
func (t *Toolkit) applicationResources() []adapter.ResourceInfo {
	t.mu.Lock()
	roots := append([]*Node{}, t.roots...)
	t.mu.Unlock()

	var out []adapter.ResourceInfo
	seen := make(map[string]bool)
	for _, root := range roots {
		root.mu.Lock()
		for key, r := range root.resources {
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, adapter.ResourceInfo{Key: r.Key, TypeName: r.TypeName, Value: r.Value, Source: r.Source, TargetType: r.TargetType})
		}
		root.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (t *Toolkit) Resources(scope adapter.ResourceScope, n adapter.Node) []adapter.ResourceInfo {
	node := asNode(n)
	var out []adapter.ResourceInfo

	switch scope {
	case wire.ScopeElement:
		if node == nil {
			return nil
		}
		// Walk from the element upward through its parents, collecting
		// each level's resources, then append application-scope resources
		// at the end.
		out = append(out, ancestorResources(node)...)
		out = append(out, t.applicationResources()...)

	case wire.ScopeWindow:
		if node == nil {
			return nil
		}
		out = ancestorResources(node)

	case wire.ScopeApplication:
		out = t.applicationResources()
	}

	return out
}

func (t *Toolkit) Style(n adapter.Node) (*adapter.StyleInfo, error) {
	node := asNode(n)
	if node == nil || node.style == nil {
		return nil, nil
	}
	s := node.style
	setters := make([]adapter.Setter, 0, len(s.Setters))
	for prop, val := range s.Setters {
		setters = append(setters, adapter.Setter{Property: prop, Value: val})
	}
	return &adapter.StyleInfo{
		Key:                 s.Key,
		TargetType:          s.TargetType,
		BasedOn:             s.BasedOn,
		Setters:             setters,
		ImplicitStyleExists: s.ImplicitStyleExists,
	}, nil
}

func (t *Toolkit) SubscribePropertyChange(n adapter.Node, name string, cb adapter.ChangeCallback) (adapter.SubscriptionToken, error) {
	node := asNode(n)
	if node == nil {
		return nil, adapter.ErrPropertyNotFound
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	if _, ok := node.properties[name]; !ok {
		return nil, adapter.ErrPropertyNotFound
	}
	node.changeSubs[name] = append(node.changeSubs[name], cb)
	return subscriptionToken{node: node, name: name, index: len(node.changeSubs[name]) - 1}, nil
}

type subscriptionToken struct {
	node  *Node
	name  string
	index int
}

func (t *Toolkit) Unsubscribe(token adapter.SubscriptionToken) {
	tok, ok := token.(subscriptionToken)
	if !ok {
		return
	}
	tok.node.mu.Lock()
	defer tok.node.mu.Unlock()
	subs := tok.node.changeSubs[tok.name]
	if tok.index < 0 || tok.index >= len(subs) {
		return
	}
	subs[tok.index] = func(any) {} // leave a no-op so later indices stay valid
	tok.node.changeSubs[tok.name] = subs
}

// ErrNoHighlightSupport is returned by Highlight for a nil node.
var ErrNoHighlightSupport = errors.New("demotoolkit: node does not support highlighting")

func (t *Toolkit) Highlight(n adapter.Node, durationMs int) error {
	if asNode(n) == nil {
		return ErrNoHighlightSupport
	}
	return nil
}

func (t *Toolkit) AttachBindingTraceSink(sink adapter.TraceSink) (detach func()) {
	// The synthetic toolkit has no real binding engine to tap; tests that
	// need binding-error coverage call inspector.Endpoint's trace ingestion
	// path directly instead of going through a live sink.
	return func() {}
}
