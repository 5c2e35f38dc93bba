package analyzer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/faze79/WPFVisualTreeMcp/internal/handleid"
	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// WatchID identifies one live property-change subscription.
type WatchID string

// watch holds the identifying and last-seen state for one active
// subscription, plus the adapter subscription token needed to tear it
// down.
type watch struct {
	id           WatchID
	handle       handleid.Handle
	propertyName string
	lastValue    string
	token        adapter.SubscriptionToken
}

// Notifier delivers a fully-formed notification to whatever currently
// connected session can carry it, without this package needing to know
// about transport.
type Notifier interface {
	NotifyPropertyChanged(n wire.PropertyChangedNotification)
}

// WatchManager owns every active watch for one endpoint session. Every
// method is expected to be called from the UI-thread marshaler's worker,
// the same discipline the handle registry requires.
type WatchManager struct {
	mu       sync.Mutex
	watches  map[WatchID]*watch
	notifier Notifier
	now      func() string
}

// NewWatchManager creates a WatchManager that delivers notifications via
// notifier. now supplies the timestamp string for each notification
// (injectable for deterministic tests).
func NewWatchManager(notifier Notifier, now func() string) *WatchManager {
	return &WatchManager{
		watches:  make(map[WatchID]*watch),
		notifier: notifier,
		now:      now,
	}
}

// Start subscribes to propertyName on the node behind handle via a,
// returning the new WatchID and the property's formatted initial value.
func (m *WatchManager) Start(a adapter.Adapter, node adapter.Node, handle handleid.Handle, propertyName, initialTypeName string, initialRaw any) (WatchID, string, error) {
	id := WatchID(uuid.NewString())
	initial := FormatValue(initialRaw, initialTypeName)

	w := &watch{id: id, handle: handle, propertyName: propertyName, lastValue: initial}

	token, err := a.SubscribePropertyChange(node, propertyName, func(newRaw any) {
		m.onChange(id, newRaw)
	})
	if err != nil {
		return "", "", err
	}
	w.token = token

	m.mu.Lock()
	m.watches[id] = w
	m.mu.Unlock()

	return id, initial, nil
}

// onChange is invoked by the adapter whenever a watched property changes.
func (m *WatchManager) onChange(id WatchID, newRaw any) {
	m.mu.Lock()
	w, ok := m.watches[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	oldValue := w.lastValue
	newValue := FormatValue(newRaw, "")
	w.lastValue = newValue
	m.mu.Unlock()

	m.notifier.NotifyPropertyChanged(wire.PropertyChangedNotification{
		NotificationEnvelope: wire.NotificationEnvelope{NotificationType: wire.NotifyPropertyChanged},
		WatchID:              string(id),
		PropertyName:         w.propertyName,
		OldValue:             oldValue,
		NewValue:             newValue,
		Timestamp:            m.now(),
	})
}

// StopAll tears down every active watch, typically called on endpoint
// shutdown. unsubscribe is the adapter's Unsubscribe method, passed in so
// this package does not need to retain an Adapter reference.
func (m *WatchManager) StopAll(unsubscribe func(adapter.SubscriptionToken)) {
	m.mu.Lock()
	watches := make([]*watch, 0, len(m.watches))
	for _, w := range m.watches {
		watches = append(watches, w)
	}
	m.watches = make(map[WatchID]*watch)
	m.mu.Unlock()

	for _, w := range watches {
		unsubscribe(w.token)
	}
}

// Count returns the number of active watches, for diagnostics/metrics.
func (m *WatchManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watches)
}
