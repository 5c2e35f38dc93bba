package inspector

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/internal/dashboard"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

func TestDashboardObservesAttachAndRequest(t *testing.T) {
	hub := dashboard.NewHub(nil)
	e, err := New(buildSample(), WithDashboard(hub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Stop)

	name := ipc.Name(config.DefaultRendezvousPrefix, os.Getpid())
	stopCh := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() { serveErr <- e.Serve(name, stopCh) }()
	t.Cleanup(func() { close(stopCh); <-serveErr })

	var conn net.Conn
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c, dialErr := ipc.Dial(name, 50*time.Millisecond)
		if dialErr == nil {
			conn = c
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if conn == nil {
		t.Fatal("never connected to the endpoint")
	}
	t.Cleanup(func() { conn.Close() })

	req := wire.TreeRequest{RequestID: "r1"}
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	frame, err := json.Marshal(wire.RequestEnvelope{Type: wire.KindGetVisualTree, Data: payload})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if err := wire.NewFrameWriter(conn).WriteFrame(frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if _, err := wire.NewFrameReader(conn).ReadFrame(); err != nil {
		t.Fatalf("read response frame: %v", err)
	}

	deadline = time.Now().Add(2 * time.Second)
	var kinds []string
	for time.Now().Before(deadline) {
		kinds = nil
		for _, ev := range hub.Recent() {
			kinds = append(kinds, ev.Kind)
		}
		if containsKind(kinds, "attach") && containsKind(kinds, "request") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dashboard events = %v, want an attach and a request event", kinds)
}

func containsKind(kinds []string, want string) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
