package inspector

import (
	"strings"
	"testing"
	"time"

	"github.com/faze79/WPFVisualTreeMcp/internal/demotoolkit"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func buildSample() *demotoolkit.Toolkit {
	tk := demotoolkit.NewToolkit()

	window := demotoolkit.Window("MainWindow")
	window.SetLayout(demotoolkit.Layout{ActualWidth: 800, ActualHeight: 600, Visibility: "Visible"})

	label := demotoolkit.New("TextBlock", "NameLabel")
	label.SetProperty("Text", "Alice", "Local")
	label.SetLayout(demotoolkit.Layout{ActualWidth: 100, ActualHeight: 20, Visibility: "Visible"})

	button := demotoolkit.New("Button", "SubmitButton")
	button.SetProperty("Content", "Submit", "Local")

	window.AddVisualChild(label)
	window.AddVisualChild(button)
	tk.AddRoot(window)

	return tk
}

func newTestEndpoint(t *testing.T) *Endpoint {
	t.Helper()
	e, err := New(buildSample())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Stop)
	return e
}

func dispatchJSON(t *testing.T, e *Endpoint, kind wire.RequestKind, data any) any {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal request data: %v", err)
	}
	return e.dispatch(wire.RequestEnvelope{Type: kind, Data: payload})
}

func TestGetVisualTreeWalksFromImplicitRoot(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindGetVisualTree, wire.TreeRequest{RequestID: "r1"})
	tree, ok := resp.(wire.TreeResponse)
	if !ok {
		t.Fatalf("resp = %#v, want wire.TreeResponse", resp)
	}
	if !tree.Success {
		t.Fatalf("Success = false, Error = %q", tree.Error)
	}
	if tree.Root.TypeName != "DemoToolkit.Window" {
		t.Errorf("Root.TypeName = %q, want DemoToolkit.Window", tree.Root.TypeName)
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("len(Root.Children) = %d, want 2", len(tree.Root.Children))
	}
	if tree.TotalElements != 3 {
		t.Errorf("TotalElements = %d, want 3", tree.TotalElements)
	}
}

func TestGetVisualTreeRespectsMaxDepth(t *testing.T) {
	e := newTestEndpoint(t)

	zero := 0
	resp := dispatchJSON(t, e, wire.KindGetVisualTree, wire.TreeRequest{RequestID: "r1", MaxDepth: &zero})
	tree := resp.(wire.TreeResponse)
	if !tree.MaxDepthReached {
		t.Error("MaxDepthReached = false, want true")
	}
	if len(tree.Root.Children) != 0 {
		t.Errorf("len(Root.Children) = %d, want 0 at depth 0", len(tree.Root.Children))
	}
}

func TestGetVisualTreeUnknownRootReturnsNotFound(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindGetVisualTree, wire.TreeRequest{RequestID: "r1", RootHandle: "elem_bogus"})
	errResp, ok := resp.(wire.ErrorResponse)
	if !ok {
		t.Fatalf("resp = %#v, want wire.ErrorResponse", resp)
	}
	if errResp.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(errResp.Error, string(wire.KindNotFound)) {
		t.Errorf("Error = %q, want it to mention %s", errResp.Error, wire.KindNotFound)
	}
}

func findHandleByName(t *testing.T, e *Endpoint, name string) string {
	t.Helper()
	resp := dispatchJSON(t, e, wire.KindFindElements, wire.FindElementsRequest{RequestID: "r", ElementName: name})
	found := resp.(wire.FindElementsResponse)
	if len(found.Matches) == 0 {
		t.Fatalf("no match for element name %q", name)
	}
	return found.Matches[0].Handle
}

func TestGetElementPropertiesReadsValueAndSource(t *testing.T) {
	e := newTestEndpoint(t)
	handle := findHandleByName(t, e, "NameLabel")

	resp := dispatchJSON(t, e, wire.KindGetElementProperties, wire.GetElementPropertiesRequest{RequestID: "r", ElementHandle: handle})
	got := resp.(wire.GetElementPropertiesResponse)
	if !got.Success {
		t.Fatalf("Success = false, Error = %q", got.Error)
	}

	var text *wire.PropertyRecord
	for i := range got.Properties {
		if got.Properties[i].Name == "Text" {
			text = &got.Properties[i]
		}
	}
	if text == nil {
		t.Fatal("no Text property in response")
	}
	if text.Value != "Alice" {
		t.Errorf("Value = %q, want Alice", text.Value)
	}
	if text.Source != wire.SourceLocal {
		t.Errorf("Source = %q, want Local", text.Source)
	}
	if text.IsBinding {
		t.Error("IsBinding = true, want false")
	}
}

func TestGetElementPropertiesOrdersByNameAscending(t *testing.T) {
	tk := demotoolkit.NewToolkit()
	window := demotoolkit.Window("MainWindow")

	node := demotoolkit.New("TextBlock", "MultiPropLabel")
	node.SetProperty("Visibility", "Visible", "Local")
	node.SetProperty("Background", "Red", "Local")
	node.SetProperty("Text", "Alice", "Local")
	node.SetProperty("FontSize", 12, "Local")
	window.AddVisualChild(node)
	tk.AddRoot(window)

	e, err := New(tk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Stop)

	handle := findHandleByName(t, e, "MultiPropLabel")
	resp := dispatchJSON(t, e, wire.KindGetElementProperties, wire.GetElementPropertiesRequest{RequestID: "r", ElementHandle: handle})
	got := resp.(wire.GetElementPropertiesResponse)
	if !got.Success {
		t.Fatalf("Success = false, Error = %q", got.Error)
	}
	if len(got.Properties) != 4 {
		t.Fatalf("len(Properties) = %d, want 4", len(got.Properties))
	}
	for i := 1; i < len(got.Properties); i++ {
		if got.Properties[i-1].Name > got.Properties[i].Name {
			t.Errorf("Properties not sorted ascending: %q before %q", got.Properties[i-1].Name, got.Properties[i].Name)
		}
	}
}

func TestGetResourcesElementScopeAppendsApplicationLast(t *testing.T) {
	tk := demotoolkit.NewToolkit()
	window := demotoolkit.Window("MainWindow")
	window.AddResource("WindowBrush", demotoolkit.Resource{TypeName: "SolidColorBrush", Value: "#FF0000", Source: "Window"})
	label := demotoolkit.New("TextBlock", "NameLabel")
	window.AddVisualChild(label)
	tk.AddRoot(window)

	other := demotoolkit.Window("OtherWindow")
	other.AddResource("AppBrush", demotoolkit.Resource{TypeName: "SolidColorBrush", Value: "#00FF00", Source: "Window"})
	tk.AddRoot(other)

	e, err := New(tk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Stop)

	handle := findHandleByName(t, e, "NameLabel")
	resp := dispatchJSON(t, e, wire.KindGetResources, wire.GetResourcesRequest{RequestID: "r", Scope: wire.ScopeElement, ElementHandle: handle})
	got := resp.(wire.GetResourcesResponse)
	if !got.Success {
		t.Fatalf("Success = false, Error = %q", got.Error)
	}
	if len(got.Resources) != 3 {
		t.Fatalf("len(Resources) = %d, want 3", len(got.Resources))
	}
	if got.Resources[0].Key != "WindowBrush" {
		t.Errorf("Resources[0].Key = %q, want WindowBrush (ancestor level first)", got.Resources[0].Key)
	}
	if got.Resources[1].Key != "AppBrush" || got.Resources[2].Key != "WindowBrush" {
		t.Errorf("application tail = [%q, %q], want [AppBrush, WindowBrush]", got.Resources[1].Key, got.Resources[2].Key)
	}
}

func TestFindElementsMatchesByTypeAndName(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindFindElements, wire.FindElementsRequest{RequestID: "r", TypeName: "Button"})
	got := resp.(wire.FindElementsResponse)
	if len(got.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1", len(got.Matches))
	}
	if got.Matches[0].Name != "SubmitButton" {
		t.Errorf("Name = %q, want SubmitButton", got.Matches[0].Name)
	}
	if !strings.Contains(got.Matches[0].Path, "MainWindow") {
		t.Errorf("Path = %q, want it to include MainWindow", got.Matches[0].Path)
	}
}

func TestFindElementsClampsMaxResults(t *testing.T) {
	e := newTestEndpoint(t)

	zero := 0
	resp := dispatchJSON(t, e, wire.KindFindElements, wire.FindElementsRequest{RequestID: "r", MaxResults: &zero})
	got := resp.(wire.FindElementsResponse)
	if len(got.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1 (maxResults clamped to 1)", len(got.Matches))
	}
}

func TestHighlightElementUnknownHandleErrors(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindHighlightElement, wire.HighlightElementRequest{RequestID: "r", ElementHandle: "elem_bogus"})
	errResp, ok := resp.(wire.ErrorResponse)
	if !ok {
		t.Fatalf("resp = %#v, want wire.ErrorResponse", resp)
	}
	if errResp.Success {
		t.Error("Success = true, want false")
	}
}

func TestHighlightElementSucceeds(t *testing.T) {
	e := newTestEndpoint(t)
	handle := findHandleByName(t, e, "SubmitButton")

	resp := dispatchJSON(t, e, wire.KindHighlightElement, wire.HighlightElementRequest{RequestID: "r", ElementHandle: handle})
	got, ok := resp.(wire.HighlightElementResponse)
	if !ok || !got.Success {
		t.Fatalf("resp = %#v, want successful HighlightElementResponse", resp)
	}
}

func TestGetLayoutInfoReturnsNotRenderableForNonVisualNode(t *testing.T) {
	e := newTestEndpoint(t)
	handle := findHandleByName(t, e, "SubmitButton") // never given a Layout

	resp := dispatchJSON(t, e, wire.KindGetLayoutInfo, wire.GetLayoutInfoRequest{RequestID: "r", ElementHandle: handle})
	errResp, ok := resp.(wire.ErrorResponse)
	if !ok {
		t.Fatalf("resp = %#v, want wire.ErrorResponse", resp)
	}
	if !strings.Contains(errResp.Error, string(wire.KindNotRenderable)) {
		t.Errorf("Error = %q, want it to mention %s", errResp.Error, wire.KindNotRenderable)
	}
}

func TestGetLayoutInfoReturnsMetrics(t *testing.T) {
	e := newTestEndpoint(t)
	handle := findHandleByName(t, e, "NameLabel")

	resp := dispatchJSON(t, e, wire.KindGetLayoutInfo, wire.GetLayoutInfoRequest{RequestID: "r", ElementHandle: handle})
	got, ok := resp.(wire.GetLayoutInfoResponse)
	if !ok || !got.Success {
		t.Fatalf("resp = %#v, want successful GetLayoutInfoResponse", resp)
	}
	if got.ActualWidth != 100 || got.ActualHeight != 20 {
		t.Errorf("ActualWidth/Height = %v/%v, want 100/20", got.ActualWidth, got.ActualHeight)
	}
}

func TestWatchPropertyReturnsInitialValueAndNotifiesOnChange(t *testing.T) {
	tk := buildSample()
	e, err := New(tk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Stop()

	handle := findHandleByName(t, e, "NameLabel")

	resp := dispatchJSON(t, e, wire.KindWatchProperty, wire.WatchPropertyRequest{RequestID: "r", ElementHandle: handle, PropertyName: "Text"})
	watchResp, ok := resp.(wire.WatchPropertyResponse)
	if !ok || !watchResp.Success {
		t.Fatalf("resp = %#v, want successful WatchPropertyResponse", resp)
	}
	if watchResp.InitialValue != "Alice" {
		t.Errorf("InitialValue = %q, want Alice", watchResp.InitialValue)
	}

	ch := make(chan []byte, 1)
	e.mu.Lock()
	e.notifyCh = ch
	e.mu.Unlock()

	node := findNodeByHandle(t, e, handle)
	node.ChangeProperty("Text", "Bob")

	select {
	case payload := <-ch:
		if !strings.Contains(string(payload), `"newValue":"Bob"`) {
			t.Errorf("notification payload = %s, want it to contain newValue Bob", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for PropertyChanged notification")
	}
}

func findNodeByHandle(t *testing.T, e *Endpoint, handle string) *demotoolkit.Node {
	t.Helper()
	node, err := e.resolveHandle(handle)
	if err != nil {
		t.Fatalf("resolveHandle: %v", err)
	}
	n, ok := node.(*demotoolkit.Node)
	if !ok {
		t.Fatalf("handle %s did not resolve to a *demotoolkit.Node", handle)
	}
	return n
}

func TestExportTreeXAMLFormat(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindExportTree, wire.ExportTreeRequest{RequestID: "r", Format: wire.FormatXAML})
	got, ok := resp.(wire.ExportTreeResponse)
	if !ok || !got.Success {
		t.Fatalf("resp = %#v, want successful ExportTreeResponse", resp)
	}
	if !strings.Contains(got.Xaml, `<Window x:Name="MainWindow">`) {
		t.Errorf("Xaml = %q, want opening Window tag", got.Xaml)
	}
	if !strings.Contains(got.Xaml, `<Button x:Name="SubmitButton" />`) {
		t.Errorf("Xaml = %q, want self-closing Button tag", got.Xaml)
	}
}

func TestExportTreeJSONFormat(t *testing.T) {
	e := newTestEndpoint(t)

	resp := dispatchJSON(t, e, wire.KindExportTree, wire.ExportTreeRequest{RequestID: "r", Format: wire.FormatJSON})
	got, ok := resp.(wire.ExportTreeResponse)
	if !ok || !got.Success {
		t.Fatalf("resp = %#v, want successful ExportTreeResponse", resp)
	}
	if got.Tree == nil {
		t.Fatal("Tree = nil, want a populated tree")
	}
	if len(got.Tree.Children) != 2 {
		t.Errorf("len(Tree.Children) = %d, want 2", len(got.Tree.Children))
	}
}

func TestGetBindingErrorsReturnsCapturedTraceLines(t *testing.T) {
	e := newTestEndpoint(t)
	e.onTraceLine(`System.Windows.Data Error: 40 : BindingExpression path error: 'Name' property not found. BindingExpression:Path=Name; target element is 'TextBlock' (Name='NameLabel'); target property is 'Text'`)

	resp := dispatchJSON(t, e, wire.KindGetBindingErrors, wire.GetBindingErrorsRequest{RequestID: "r"})
	got, ok := resp.(wire.GetBindingErrorsResponse)
	if !ok || !got.Success {
		t.Fatalf("resp = %#v, want successful GetBindingErrorsResponse", resp)
	}
	if len(got.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(got.Errors))
	}
	if got.Errors[0].ElementName != "NameLabel" {
		t.Errorf("ElementName = %q, want NameLabel", got.Errors[0].ElementName)
	}
}

func TestDispatchUnknownKindReturnsInvalidRequest(t *testing.T) {
	e := newTestEndpoint(t)
	resp := e.dispatch(wire.RequestEnvelope{Type: wire.RequestKind("Bogus"), Data: []byte(`{}`)})
	errResp, ok := resp.(wire.ErrorResponse)
	if !ok {
		t.Fatalf("resp = %#v, want wire.ErrorResponse", resp)
	}
	if !strings.Contains(errResp.Error, string(wire.KindInvalidRequest)) {
		t.Errorf("Error = %q, want it to mention %s", errResp.Error, wire.KindInvalidRequest)
	}
}
