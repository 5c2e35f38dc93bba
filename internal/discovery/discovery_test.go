package discovery

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestAliveReportsCurrentProcess(t *testing.T) {
	if !Alive(context.Background(), int32(os.Getpid())) {
		t.Fatal("expected the current process to report alive")
	}
}

func TestAliveReportsFalseForImplausiblePID(t *testing.T) {
	if Alive(context.Background(), 1<<30) {
		t.Fatal("expected an implausible PID to report not alive")
	}
}

func TestByNameFindsCurrentTestBinary(t *testing.T) {
	cands, err := ByName(context.Background(), "")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected at least one running process")
	}
}

func TestWaitAliveTimesOutOnDeadPID(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if WaitAlive(ctx, 1<<30, 100*time.Millisecond) {
		t.Fatal("expected WaitAlive to time out for an implausible PID")
	}
}
