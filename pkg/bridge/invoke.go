package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/google/uuid"

	"github.com/faze79/WPFVisualTreeMcp/internal/discovery"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/internal/telemetry"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// probeTimeout bounds DiscoverCandidates' liveness dial, kept short since
// it runs once per candidate and a slow/unreachable endpoint should not
// stall the whole discovery call.
const probeTimeout = 300 * time.Millisecond

func dialInspector(pid int, rendezvousPrefix string, timeout time.Duration) (net.Conn, error) {
	name := ipc.Name(rendezvousPrefix, pid)
	return ipc.Dial(name, timeout)
}

// Invoke sends one request of kind with the given requestId-bearing data
// payload and returns the raw JSON of the endpoint's response envelope.
// Every call opens a fresh connection and is independent of any prior
// Invoke; there is no long-lived connection pool.
func (b *Bridge) Invoke(ctx context.Context, kind wire.RequestKind, data any) (jsoniter.RawMessage, error) {
	ctx, span := telemetry.StartInvokeSpan(ctx, string(kind), b.processID)
	defer span.End()

	if b.processID == 0 {
		return nil, wire.NewRemediatedError(wire.KindInvalidRequest, "bridge is not attached to a process",
			"call Attach with a processId or processName before invoking a request.")
	}
	if !discovery.Alive(ctx, b.processID) {
		return nil, wire.NewRemediatedError(wire.KindProcessGone, fmt.Sprintf("process %d is not running", b.processID),
			"re-discover and re-attach to the target application.")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, wire.NewError(wire.KindInvalidRequest, "encode request: "+err.Error())
	}
	frame, err := json.Marshal(wire.RequestEnvelope{Type: kind, Data: payload})
	if err != nil {
		return nil, wire.NewError(wire.KindInvalidRequest, "encode envelope: "+err.Error())
	}

	conn, err := dialInspector(int(b.processID), b.cfg.ResolvedRendezvousPrefix(), b.cfg.ResolvedConnectTimeout())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, wire.NewRemediatedError(wire.KindConnectionTimeout, "connecting to inspector endpoint timed out: "+err.Error(),
				"confirm the target process has an inspector endpoint hosted and is not stalled on its UI thread.")
		}
		return nil, wire.NewRemediatedError(wire.KindInspectorUnreachable, "could not reach inspector endpoint: "+err.Error(),
			"confirm the target process hosts an inspector endpoint under the expected rendezvous name.")
	}
	defer conn.Close()

	requestTimeout := b.cfg.ResolvedRequestTimeout()
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < requestTimeout {
			requestTimeout = until
		}
	}
	if err := conn.SetDeadline(time.Now().Add(requestTimeout)); err != nil {
		return nil, wire.NewError(wire.KindHandlerError, "set connection deadline: "+err.Error())
	}

	if err := wire.NewFrameWriter(conn).WriteFrame(frame); err != nil {
		if isTimeout(err) {
			return nil, wire.NewRemediatedError(wire.KindRequestTimeout, "writing request timed out: "+err.Error(),
				"the inspector endpoint may be busy; retry the call.")
		}
		return nil, wire.NewRemediatedError(wire.KindInspectorUnreachable, "writing request failed: "+err.Error(), "")
	}

	resp, err := wire.NewFrameReader(conn).ReadFrame()
	if err != nil {
		if isTimeout(err) {
			return nil, wire.NewRemediatedError(wire.KindRequestTimeout, "waiting for response timed out: "+err.Error(),
				"the inspector endpoint's UI thread may be unresponsive; retry the call.")
		}
		return nil, wire.NewRemediatedError(wire.KindInspectorUnreachable, "reading response failed: "+err.Error(), "")
	}

	var env wire.ResponseEnvelope
	if err := json.Unmarshal(resp, &env); err != nil {
		return nil, wire.NewRemediatedError(wire.KindProtocolError, "malformed response: "+err.Error(),
			"the endpoint returned a frame that does not match the documented protocol; check endpoint and bridge versions match.")
	}
	if !env.Success {
		return nil, wire.NewError(wire.KindHandlerError, env.Error)
	}

	return jsoniter.RawMessage(resp), nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// NewRequestID returns a fresh identifier suitable for a request's
// requestId field.
func NewRequestID() string {
	return uuid.NewString()
}
