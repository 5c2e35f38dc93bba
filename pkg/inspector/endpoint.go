package inspector

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/faze79/WPFVisualTreeMcp/internal/analyzer"
	"github.com/faze79/WPFVisualTreeMcp/internal/dashboard"
	"github.com/faze79/WPFVisualTreeMcp/internal/handleid"
	"github.com/faze79/WPFVisualTreeMcp/internal/ipc"
	"github.com/faze79/WPFVisualTreeMcp/internal/marshal"
	"github.com/faze79/WPFVisualTreeMcp/internal/telemetry"
	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// Option configures an Endpoint at construction.
type Option func(*Endpoint)

// WithLogger overrides the endpoint's slog.Logger; the zero value logs to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Endpoint) { e.logger = l }
}

// WithMarshalTimeout overrides the bound applied to every UI-thread
// dispatch; DefaultMarshalTimeout applies otherwise.
func WithMarshalTimeout(d time.Duration) Option {
	return func(e *Endpoint) { e.marshalTimeout = d }
}

// WithBindingErrorBufferSize overrides the FIFO capacity behind
// GetBindingErrors.
func WithBindingErrorBufferSize(n int) Option {
	return func(e *Endpoint) { e.bindingErrors = analyzer.NewBindingErrorBuffer(n) }
}

// WithNotificationQueueDepth overrides how many PropertyChanged
// notifications may be pending for a slow client before the oldest is
// dropped.
func WithNotificationQueueDepth(n int) Option {
	return func(e *Endpoint) { e.notifyQueueDepth = n }
}

// WithBindingErrorStreaming enables pushing a BindingError notification
// for every trace line captured, in addition to the always-on FIFO buffer
// GetBindingErrors pulls from. Disabled by default: binding errors are
// buffered and pulled, not streamed, unless a caller opts in.
func WithBindingErrorStreaming(enabled bool) Option {
	return func(e *Endpoint) { e.streamBindingErrors = enabled }
}

// WithMetrics wires m into every dispatched request; the zero value
// leaves metrics uncollected so constructing an Endpoint never requires a
// Prometheus registry.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Endpoint) { e.metrics = m }
}

// WithDashboard wires h to receive a live Event for every connect,
// disconnect, dispatched request, and notification; the zero value
// leaves the endpoint with no observer to report to.
func WithDashboard(h *dashboard.Hub) Option {
	return func(e *Endpoint) { e.dashboard = h }
}

// DefaultMarshalTimeout bounds how long a request waits for the UI thread.
const DefaultMarshalTimeout = 10 * time.Second

// DefaultNotificationQueueDepth is the PropertyChanged backpressure bound.
const DefaultNotificationQueueDepth = 256

// Endpoint is the Inspector Endpoint: one per target process. Construct
// with New, then run Serve in a goroutine for the life of the host
// process.
type Endpoint struct {
	adapter   adapter.Adapter
	registry  *handleid.Registry
	marshaler *marshal.Marshaler
	watches   *analyzer.WatchManager
	bindingErrors *analyzer.BindingErrorBuffer
	schema    *jsonschema.Schema

	marshalTimeout       time.Duration
	notifyQueueDepth     int
	streamBindingErrors  bool
	logger               *slog.Logger
	metrics              *telemetry.Metrics
	dashboard            *dashboard.Hub

	mu         sync.Mutex // guards writeConn/notifyCh against concurrent Serve calls
	writeConn  net.Conn
	writeMu    sync.Mutex // serializes frame writes to writeConn
	notifyCh   chan []byte

	detachTrace func()
}

// New constructs an Endpoint over toolkit, compiling the envelope schema
// once up front so per-request validation costs no further compilation.
func New(toolkit adapter.Adapter, opts ...Option) (*Endpoint, error) {
	schema, err := wire.EnvelopeSchema()
	if err != nil {
		return nil, err
	}

	e := &Endpoint{
		adapter:          toolkit,
		registry:         handleid.New(),
		marshaler:        marshal.New(),
		bindingErrors:    analyzer.NewBindingErrorBuffer(analyzer.DefaultBindingErrorBufferSize),
		schema:           schema,
		marshalTimeout:   DefaultMarshalTimeout,
		notifyQueueDepth: DefaultNotificationQueueDepth,
		logger:           slog.Default(),
	}
	e.watches = analyzer.NewWatchManager(e, timeNowUTC)

	for _, opt := range opts {
		opt(e)
	}

	e.detachTrace = toolkit.AttachBindingTraceSink(e.onTraceLine)

	return e, nil
}

// Serve opens the rendezvous endpoint named name and runs the
// accept/handle loop until l is closed or stop is closed. One connection
// is served fully (to disconnection) before the next is accepted: this
// endpoint serves one controller at a time, and a second concurrent dial
// queues in the listener backlog rather than being rejected.
func (e *Endpoint) Serve(name string, stop <-chan struct{}) error {
	l, err := ipc.Listen(name)
	if err != nil {
		return err
	}
	defer l.Close()

	go func() {
		<-stop
		l.Close()
	}()

	e.logger.Info("inspector endpoint listening", "rendezvous", name)

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-stop:
				return nil
			default:
				return err
			}
		}
		e.handleConn(conn)
	}
}

// Stop tears down the UI-thread marshaler, every active watch, and the
// binding-trace subscription. Call after Serve has returned.
func (e *Endpoint) Stop() {
	e.watches.StopAll(e.adapter.Unsubscribe)
	if e.metrics != nil {
		e.metrics.ActiveWatches.Set(0)
	}
	if e.detachTrace != nil {
		e.detachTrace()
	}
	e.marshaler.Stop()
}

func (e *Endpoint) onTraceLine(line string) {
	rec := analyzer.ParseTraceLine(line, timeNowUTC())
	e.bindingErrors.Push(rec)
	if e.streamBindingErrors {
		e.pushNotification(wire.BindingErrorNotification{
			NotificationEnvelope: wire.NotificationEnvelope{NotificationType: wire.NotifyBindingError},
			BindingErrorRecord:   rec,
		})
	}
}

// NotifyPropertyChanged implements analyzer.Notifier.
func (e *Endpoint) NotifyPropertyChanged(n wire.PropertyChangedNotification) {
	e.pushNotification(n)
}

func (e *Endpoint) pushNotification(v any) {
	payload, err := wire.EncodeNotification(v)
	if err != nil {
		e.logger.Error("encode notification", "error", err)
		return
	}

	e.mu.Lock()
	ch := e.notifyCh
	e.mu.Unlock()
	if ch == nil {
		return // no session connected; PropertyChanged notifications are dropped, not buffered
	}
	kind := "PropertyChanged"
	if _, ok := v.(wire.BindingErrorNotification); ok {
		kind = "BindingError"
	}
	if e.metrics != nil {
		e.metrics.NotificationsSent.WithLabelValues(kind).Inc()
	}
	if e.dashboard != nil {
		e.dashboard.Broadcast(dashboard.Event{Kind: "notification:" + kind, Timestamp: time.Now().UTC()})
	}

	select {
	case ch <- payload:
	default:
		// Queue full: drop the oldest pending notification to make room,
		// the bounded drop-oldest policy spec requires for PropertyChanged.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- payload:
		default:
		}
	}
}

func timeNowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
