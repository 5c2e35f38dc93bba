// Package handleid is the arena that bridges a live, in-process UI-object
// graph into stable, opaque wire identities. It never leaves the process;
// only the string Handle it returns travels over the wire.
package handleid

import (
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
)

// Handle is a short, opaque, session-scoped token naming one live node.
type Handle string

// entropySource is shared by the Assign calls of every Registry;
// ulid.DefaultEntropy is itself safe for concurrent use, so registries
// need no lock of their own around it.
var entropySource = ulid.DefaultEntropy()

// Registry assigns and resolves Handles for the lifetime of one inspector
// endpoint. All touchpoints run under the UI-thread marshaler, so the
// mutex here exists only to protect against callers (such as
// Registry.Count used by diagnostics) outside that discipline.
type Registry struct {
	mu       sync.Mutex
	byNode   map[adapter.Node]Handle
	byHandle map[Handle]adapter.Node
}

// New creates an empty Handle Registry.
func New() *Registry {
	return &Registry{
		byNode:   make(map[adapter.Node]Handle),
		byHandle: make(map[Handle]adapter.Node),
	}
}

// Assign returns the Handle for node, minting one on first observation.
// Repeated calls for the same node (by reference identity) return the
// same Handle; distinct nodes never share a Handle.
func (r *Registry) Assign(node adapter.Node) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.byNode[node]; ok {
		return h
	}
	h := Handle("elem_" + strings.ToLower(ulid.MustNew(ulid.Now(), entropySource).String()))
	r.byNode[node] = h
	r.byHandle[h] = node
	return h
}

// Resolve returns the node for h, or ok=false if h is not tracked by this
// registry (including handles from a different, or since-terminated,
// session).
func (r *Registry) Resolve(h Handle) (adapter.Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	node, ok := r.byHandle[h]
	return node, ok
}

// Count returns the number of distinct nodes currently tracked.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byNode)
}
