package bridge

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/internal/demotoolkit"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/pkg/inspector"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// startTestEndpoint serves an inspector endpoint under the current test
// process's own PID, so DiscoverCandidates/Attach/Invoke can run against a
// real, short-lived rendezvous listener without a separate WPF host.
func startTestEndpoint(t *testing.T) (pid int32, stop func()) {
	t.Helper()

	window := demotoolkit.Window("MainWindow")
	label := demotoolkit.New("TextBlock", "Status")
	label.SetProperty("Text", "Ready", "Local")
	window.AddVisualChild(label)

	tk := demotoolkit.NewToolkit()
	tk.AddRoot(window)

	e, err := inspector.New(tk)
	if err != nil {
		t.Fatalf("inspector.New: %v", err)
	}

	name := ipc.Name(config.DefaultRendezvousPrefix, os.Getpid())
	stopCh := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() { serveErr <- e.Serve(name, stopCh) }()

	// Poll until the rendezvous endpoint accepts a dial instead of racing
	// Serve's goroutine startup with a fixed sleep.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, dialErr := ipc.Dial(name, 50*time.Millisecond)
		if dialErr == nil {
			conn.Close()
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	return int32(os.Getpid()), func() {
		close(stopCh)
		e.Stop()
		<-serveErr
	}
}

func TestAttachToRunningProcessSucceeds(t *testing.T) {
	pid, stop := startTestEndpoint(t)
	defer stop()

	b := New()
	if err := b.Attach(context.Background(), pid, ""); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if b.ProcessID() != pid {
		t.Errorf("ProcessID() = %d, want %d", b.ProcessID(), pid)
	}
}

func TestAttachToImplausiblePIDFails(t *testing.T) {
	b := New()
	err := b.Attach(context.Background(), 999999, "")
	if err == nil {
		t.Fatal("Attach: expected error for a PID that does not exist")
	}
	werr, ok := err.(*wire.Error)
	if !ok {
		t.Fatalf("err = %#v, want *wire.Error", err)
	}
	if werr.Kind != wire.KindProcessGone {
		t.Errorf("Kind = %v, want ProcessGone", werr.Kind)
	}
}

func TestInvokeGetVisualTreeRoundTrips(t *testing.T) {
	pid, stop := startTestEndpoint(t)
	defer stop()

	b := New()
	if err := b.Attach(context.Background(), pid, ""); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	resp, err := b.GetVisualTree(context.Background(), wire.TreeRequest{})
	if err != nil {
		t.Fatalf("GetVisualTree: %v", err)
	}
	if !resp.Success {
		t.Fatalf("Success = false, Error = %q", resp.Error)
	}
	if resp.Root.TypeName != "DemoToolkit.Window" {
		t.Errorf("Root.TypeName = %q, want DemoToolkit.Window", resp.Root.TypeName)
	}
}

func TestInvokeUnattachedBridgeFails(t *testing.T) {
	b := New()
	_, err := b.GetVisualTree(context.Background(), wire.TreeRequest{})
	if err == nil {
		t.Fatal("GetVisualTree: expected error for an unattached bridge")
	}
}

func TestInvokeAfterProcessGoneReturnsProcessGone(t *testing.T) {
	pid, stop := startTestEndpoint(t)
	b := New()
	if err := b.Attach(context.Background(), pid, ""); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	stop()

	// Fabricate an unreachable PID on the attached bridge to simulate the
	// target process having exited between Attach and Invoke.
	b.processID = 999999

	_, err := b.GetVisualTree(context.Background(), wire.TreeRequest{})
	if err == nil {
		t.Fatal("GetVisualTree: expected error once the process is gone")
	}
	werr, ok := err.(*wire.Error)
	if !ok {
		t.Fatalf("err = %#v, want *wire.Error", err)
	}
	if werr.Kind != wire.KindProcessGone {
		t.Errorf("Kind = %v, want ProcessGone", werr.Kind)
	}
}

func TestDiscoverCandidatesFindsCurrentTestBinary(t *testing.T) {
	b := New()
	candidates, err := b.DiscoverCandidates(context.Background(), "")
	if err != nil {
		t.Fatalf("DiscoverCandidates: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("DiscoverCandidates returned no processes on a live system")
	}
}
