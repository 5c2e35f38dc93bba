package analyzer

import (
	"testing"

	"github.com/faze79/WPFVisualTreeMcp/internal/handleid"
	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// fakeAdapter implements only the methods watch_test.go exercises; the
// embedded nil Adapter satisfies the rest of the interface and would
// panic if a test accidentally called an unimplemented method.
type fakeAdapter struct {
	adapter.Adapter
	cb    adapter.ChangeCallback
	token adapter.SubscriptionToken
}

func (f *fakeAdapter) SubscribePropertyChange(node adapter.Node, name string, cb adapter.ChangeCallback) (adapter.SubscriptionToken, error) {
	f.cb = cb
	return f.token, nil
}

func (f *fakeAdapter) Unsubscribe(token adapter.SubscriptionToken) {}

type fakeNotifier struct {
	notifications []wire.PropertyChangedNotification
}

func (f *fakeNotifier) NotifyPropertyChanged(n wire.PropertyChangedNotification) {
	f.notifications = append(f.notifications, n)
}

func TestWatchManagerStartReturnsInitialValue(t *testing.T) {
	notifier := &fakeNotifier{}
	m := NewWatchManager(notifier, func() string { return "t0" })
	a := &fakeAdapter{}
	reg := handleid.New()
	node := &struct{}{}
	h := reg.Assign(node)

	id, initial, err := m.Start(a, node, h, "Text", "String", "A")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty watch id")
	}
	if initial != "A" {
		t.Errorf("initial = %q, want A", initial)
	}
}

func TestWatchManagerDeliversPropertyChanged(t *testing.T) {
	notifier := &fakeNotifier{}
	m := NewWatchManager(notifier, func() string { return "t1" })
	a := &fakeAdapter{}
	reg := handleid.New()
	node := &struct{}{}
	h := reg.Assign(node)

	id, initial, err := m.Start(a, node, h, "Text", "String", "A")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	a.cb("B")

	if len(notifier.notifications) != 1 {
		t.Fatalf("len(notifications) = %d, want 1", len(notifier.notifications))
	}
	n := notifier.notifications[0]
	if n.WatchID != string(id) {
		t.Errorf("WatchID = %q, want %q", n.WatchID, id)
	}
	if n.OldValue != initial {
		t.Errorf("OldValue = %q, want %q (the reported initial value)", n.OldValue, initial)
	}
	if n.NewValue != "B" {
		t.Errorf("NewValue = %q, want B", n.NewValue)
	}

	// A second change compares against the *previous notification's*
	// new value, not the original initial value.
	a.cb("C")
	if len(notifier.notifications) != 2 {
		t.Fatalf("len(notifications) = %d, want 2", len(notifier.notifications))
	}
	if notifier.notifications[1].OldValue != "B" {
		t.Errorf("second OldValue = %q, want B", notifier.notifications[1].OldValue)
	}
}

func TestWatchManagerStopAllUnsubscribes(t *testing.T) {
	notifier := &fakeNotifier{}
	m := NewWatchManager(notifier, func() string { return "t" })
	a := &fakeAdapter{}
	reg := handleid.New()
	node := &struct{}{}
	h := reg.Assign(node)

	m.Start(a, node, h, "Text", "String", "A")
	if m.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", m.Count())
	}

	unsubscribed := 0
	m.StopAll(func(adapter.SubscriptionToken) { unsubscribed++ })

	if unsubscribed != 1 {
		t.Errorf("unsubscribed = %d, want 1", unsubscribed)
	}
	if m.Count() != 0 {
		t.Errorf("Count() after StopAll = %d, want 0", m.Count())
	}
}
