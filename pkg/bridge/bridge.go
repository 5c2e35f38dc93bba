package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/faze79/WPFVisualTreeMcp/internal/config"
	"github.com/faze79/WPFVisualTreeMcp/internal/discovery"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// Candidate is one plausible target process surfaced by DiscoverCandidates.
type Candidate struct {
	ProcessID          int32  `json:"processId"`
	Name               string `json:"name"`
	CommandLine        string `json:"commandLine"`
	InspectorAvailable bool   `json:"inspectorAvailable"`
}

// Option configures a Bridge at construction.
type Option func(*Bridge)

// WithLogger overrides the bridge's slog.Logger; the zero value logs to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// WithConfig overrides the connect/request timeout source; the zero value
// uses a zero config.Config, which resolves to its own defaults (5s
// connect, 30s request).
func WithConfig(c *config.Config) Option {
	return func(b *Bridge) { b.cfg = c }
}

// Bridge is the Controller Bridge: one per agent session. Attach to a
// target process, then call Invoke (or one of the typed wrappers in
// calls.go) once per tool call.
type Bridge struct {
	cfg    *config.Config
	logger *slog.Logger

	processID   int32
	processName string
}

// New constructs an unattached Bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{cfg: &config.Config{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DiscoverCandidates enumerates processes whose executable name contains
// query (case-insensitive), marking each with whether its rendezvous endpoint
// currently answers a dial.
func (b *Bridge) DiscoverCandidates(ctx context.Context, query string) ([]Candidate, error) {
	procs, err := discovery.ByName(ctx, query)
	if err != nil {
		return nil, wire.NewRemediatedError(wire.KindHandlerError, "process enumeration failed: "+err.Error(),
			"check that the controller has permission to list processes on this host.")
	}

	out := make([]Candidate, 0, len(procs))
	for _, p := range procs {
		out = append(out, Candidate{
			ProcessID:          p.ProcessID,
			Name:               p.Name,
			CommandLine:        p.CommandLine,
			InspectorAvailable: probeInspector(p.ProcessID, b.cfg.ResolvedRendezvousPrefix()),
		})
	}
	return out, nil
}

// Attach validates that the target process exists and remembers its
// identity for subsequent Invoke calls. Pass processID, or 0 and a
// non-empty processName to resolve it via discovery (among several
// matching processes, the one with the highest PID is chosen).
func (b *Bridge) Attach(ctx context.Context, processID int32, processName string) error {
	if processID == 0 {
		if processName == "" {
			return wire.NewRemediatedError(wire.KindInvalidRequest, "attach requires a processId or processName",
				"call discoverCandidates first and pass one of the returned processIds.")
		}
		candidates, err := discovery.ByName(ctx, processName)
		if err != nil {
			return wire.NewRemediatedError(wire.KindHandlerError, "process lookup failed: "+err.Error(), "")
		}
		if len(candidates) == 0 {
			return wire.NewRemediatedError(wire.KindProcessGone, fmt.Sprintf("no running process matches %q", processName),
				"confirm the target application is running, then call discoverCandidates again.")
		}
		processID = candidates[len(candidates)-1].ProcessID
	}

	if !discovery.Alive(ctx, processID) {
		return wire.NewRemediatedError(wire.KindProcessGone, fmt.Sprintf("process %d is not running", processID),
			"re-discover and re-attach to the target application.")
	}

	b.processID = processID
	b.processName = processName
	return nil
}

// ProcessID returns the PID this Bridge is currently attached to, or 0
// before Attach succeeds.
func (b *Bridge) ProcessID() int32 { return b.processID }

func probeInspector(pid int32, rendezvousPrefix string) bool {
	conn, err := dialInspector(int(pid), rendezvousPrefix, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
