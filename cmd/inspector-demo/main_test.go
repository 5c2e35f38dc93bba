package main

import "testing"

func TestBuildSampleTreeHasExpectedShape(t *testing.T) {
	tk := buildSampleTree()
	roots := tk.RootNodes()
	if len(roots) != 1 {
		t.Fatalf("RootNodes() returned %d roots, want 1", len(roots))
	}

	window := roots[0]
	children := tk.ChildrenVisual(window)
	if len(children) != 1 {
		t.Fatalf("window has %d visual children, want 1", len(children))
	}

	panelChildren := tk.ChildrenVisual(children[0])
	if len(panelChildren) != 3 {
		t.Fatalf("panel has %d visual children, want 3 (label, button, status)", len(panelChildren))
	}
}

func TestBuildSampleTreeBindingsAreCoherent(t *testing.T) {
	tk := buildSampleTree()
	window := tk.RootNodes()[0]
	panel := tk.ChildrenVisual(window)[0]
	status := tk.ChildrenVisual(panel)[2]

	binding, err := tk.Binding(status, "Text")
	if err != nil {
		t.Fatalf("Binding: %v", err)
	}
	if binding == nil {
		t.Fatal("Binding returned nil for StatusLabel.Text, want a binding")
	}
	if !binding.HasError {
		t.Error("HasError = false, want true for the synthetic path-error binding")
	}
}
