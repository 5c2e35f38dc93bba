// Package discovery finds candidate target processes for the Controller
// Bridge to attach to and answers whether a previously attached process is
// still alive. Process enumeration uses gopsutil, a cross-platform process
// library, rather than a POSIX-only syscall.Kill/procfs probe: the
// inspected host is routinely a Windows WPF process, so a Unix-only
// liveness check is not an option here.
package discovery

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Candidate is one process discovery reports as a plausible inspection
// target: it exposes a rendezvous endpoint name a bridge can try dialing.
type Candidate struct {
	ProcessID   int32
	Name        string
	CommandLine string
}

// ByName lists running processes whose executable name contains query
// (case-insensitive), sorted by PID for deterministic output.
func ByName(ctx context.Context, query string) ([]Candidate, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var out []Candidate
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		cmdline, _ := p.CmdlineWithContext(ctx)
		out = append(out, Candidate{ProcessID: p.Pid, Name: name, CommandLine: cmdline})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ProcessID < out[j].ProcessID })
	return out, nil
}

// Alive reports whether pid still names a running process. The bridge
// calls this before every invoke to classify a dead target as ProcessGone
// rather than relying solely on a failed dial, because a dead PID can be
// recycled by the OS between calls.
func Alive(ctx context.Context, pid int32) bool {
	running, err := process.PidExistsWithContext(ctx, pid)
	if err != nil {
		return false
	}
	return running
}

// WaitAlive polls Alive until pid appears, timeout elapses or ctx is
// done.
func WaitAlive(ctx context.Context, pid int32, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if Alive(ctx, pid) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
