package inspector

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/faze79/WPFVisualTreeMcp/internal/dashboard"
	"github.com/faze79/WPFVisualTreeMcp/internal/telemetry"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// handleConn runs the Reading/Dispatching/Writing cycle for one connected
// controller until it disconnects, then returns so Serve can accept the
// next one.
func (e *Endpoint) handleConn(conn net.Conn) {
	defer conn.Close()

	e.mu.Lock()
	e.writeConn = conn
	e.notifyCh = make(chan []byte, e.notifyQueueDepth)
	notifyCh := e.notifyCh
	e.mu.Unlock()
	if e.metrics != nil {
		e.metrics.ConnectedClients.Set(1)
	}
	if e.dashboard != nil {
		e.dashboard.Broadcast(dashboard.Event{Kind: "attach", Detail: conn.RemoteAddr().String(), Timestamp: time.Now().UTC()})
	}

	defer func() {
		e.mu.Lock()
		e.writeConn = nil
		e.notifyCh = nil
		e.mu.Unlock()
		if e.metrics != nil {
			e.metrics.ConnectedClients.Set(0)
		}
		if e.dashboard != nil {
			e.dashboard.Broadcast(dashboard.Event{Kind: "detach", Detail: conn.RemoteAddr().String(), Timestamp: time.Now().UTC()})
		}
	}()

	notifyDone := make(chan struct{})
	go func() {
		defer close(notifyDone)
		for payload := range notifyCh {
			if err := e.writeFrame(payload); err != nil {
				return
			}
		}
	}()
	defer func() {
		close(notifyCh)
		<-notifyDone
	}()

	fr := wire.NewFrameReader(conn)

	for {
		frame, err := fr.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Warn("read frame", "error", err)
			}
			return
		}
		if len(frame) == 0 {
			continue
		}

		start := time.Now()
		kind, resp := e.dispatchFrame(frame)
		payload, err := wire.EncodeResponse(resp)
		if err != nil {
			e.logger.Error("encode response", "error", err)
			return
		}
		errKind := responseErrorKind(payload)
		if e.metrics != nil {
			e.metrics.ObserveRequest(string(kind), start, errKind)
		}
		if e.dashboard != nil {
			detail := string(kind)
			if errKind != "" {
				detail += " (" + errKind + ")"
			}
			e.dashboard.Broadcast(dashboard.Event{Kind: "request", Detail: detail, Timestamp: time.Now().UTC()})
		}
		if err := e.writeFrame(payload); err != nil {
			e.logger.Warn("write frame", "error", err)
			return
		}
	}
}

// writeFrame serializes concurrent writers (the read/dispatch loop and the
// notification pump) so no two frames interleave on the wire.
func (e *Endpoint) writeFrame(payload []byte) error {
	e.mu.Lock()
	conn := e.writeConn
	e.mu.Unlock()
	if conn == nil {
		return net.ErrClosed
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return wire.NewFrameWriter(conn).WriteFrame(payload)
}

// dispatchFrame validates and routes one request frame to its handler,
// translating every failure mode (malformed JSON, schema violation,
// unknown requestId) into a clean error response rather than closing the
// connection. The returned kind is "" for a frame that never resolved to
// a known request type.
func (e *Endpoint) dispatchFrame(frame []byte) (wire.RequestKind, any) {
	if err := wire.ValidateEnvelope(e.schema, frame); err != nil {
		return "", wire.NewErrorResponse("", classifiedMessage(wire.KindInvalidRequest, err.Error()))
	}

	env, err := wire.DecodeRequestEnvelope(frame)
	if err != nil {
		return "", wire.NewErrorResponse("", classifiedMessage(wire.KindInvalidRequest, err.Error()))
	}

	_, span := telemetry.StartDispatchSpan(context.Background(), string(env.Type))
	defer span.End()

	return env.Type, e.dispatch(env)
}

// responseErrorKind extracts the classified error-kind prefix from a
// failed response's already-encoded payload (errString always writes
// "kind: msg"), or "" for a successful response.
func responseErrorKind(payload []byte) string {
	var peek struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &peek); err != nil || peek.Success {
		return ""
	}
	if idx := strings.Index(peek.Error, ": "); idx >= 0 {
		return peek.Error[:idx]
	}
	return peek.Error
}

func classifiedMessage(kind wire.ErrorKind, msg string) string {
	return string(kind) + ": " + msg
}
