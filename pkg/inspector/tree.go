package inspector

import (
	"fmt"

	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// childrenFunc selects visual vs logical traversal for GetVisualTree vs
// GetLogicalTree, the only difference between the two handlers.
type childrenFunc func(adapter.Node) []adapter.Node

// buildTree walks node depth-first up to maxDepth, minting a Handle for
// every node it visits. It reports whether the walk was cut short by
// maxDepth so the caller can set maxDepthReached.
func (e *Endpoint) buildTree(node adapter.Node, depth, maxDepth int, children childrenFunc, total *int) (*wire.VisualTreeNode, bool) {
	*total++
	name, _ := e.adapter.Name(node)
	wn := &wire.VisualTreeNode{
		Handle:   string(e.registry.Assign(node)),
		TypeName: e.adapter.TypeName(node),
		Name:     name,
		Depth:    depth,
	}

	if depth >= maxDepth {
		kids := children(node)
		return wn, len(kids) > 0
	}

	cut := false
	for _, child := range children(node) {
		childNode, childCut := e.buildTree(child, depth+1, maxDepth, children, total)
		wn.Children = append(wn.Children, childNode)
		cut = cut || childCut
	}
	return wn, cut
}

// elementLabel renders a node as "Type[Name]" or bare "Type" for
// FindElements path-building and XAML export.
func elementLabel(typeName, name string) string {
	if name == "" {
		return typeName
	}
	return fmt.Sprintf("%s[%s]", typeName, name)
}
