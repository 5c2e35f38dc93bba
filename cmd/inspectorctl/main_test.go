package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newTestCommand(timeout time.Duration) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Duration("timeout", timeout, "request timeout")
	return cmd
}

func TestRequestContextAppliesTimeout(t *testing.T) {
	cmd := newTestCommand(50 * time.Millisecond)
	ctx, cancel := requestContext(cmd)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("ctx has no deadline, want one derived from --timeout")
	}
	if time.Until(deadline) > 50*time.Millisecond {
		t.Errorf("deadline is further out than the configured timeout")
	}
}

func TestRequestContextZeroTimeoutHasNoDeadline(t *testing.T) {
	cmd := newTestCommand(0)
	ctx, cancel := requestContext(cmd)
	defer cancel()

	if _, ok := ctx.Deadline(); ok {
		t.Error("ctx has a deadline, want none when --timeout is 0")
	}
	select {
	case <-ctx.Done():
		t.Error("ctx is already done")
	default:
	}
}
