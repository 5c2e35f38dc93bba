package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Router builds the dashboard's HTTP handler: "/" serves the static
// status page, "/events" upgrades to a websocket streaming Events, and
// "/healthz" is a plain liveness probe.
func (h *Hub) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", h.serveIndex)
	r.Get("/events", h.serveEvents)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

func (h *Hub) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// serveEvents upgrades the request to a websocket and streams Recent()
// followed by every live Broadcast until the client disconnects.
func (h *Hub) serveEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("dashboard websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for _, ev := range h.Recent() {
		if err := writeEvent(conn, ev); err != nil {
			return
		}
	}

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// Drain and discard client frames (pings, close) on a background
	// goroutine so a half-closed connection is noticed promptly.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev := <-ch:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev Event) error {
	payload, err := MarshalEvent(ev)
	if err != nil {
		return nil // malformed event, nothing the client can do with it either
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>inspector endpoint activity</title>
  <style>
    body { font-family: ui-monospace, monospace; background: #111; color: #ddd; margin: 2rem; }
    h1 { font-size: 1.1rem; color: #9cf; }
    #log { white-space: pre-wrap; }
    .kind { color: #6f9; }
    .ts { color: #777; }
  </style>
</head>
<body>
  <h1>inspector endpoint activity</h1>
  <div id="log"></div>
  <script>
    const log = document.getElementById("log");
    const ws = new WebSocket("ws://" + location.host + "/events");
    ws.onmessage = (msg) => {
      const ev = JSON.parse(msg.data);
      const line = document.createElement("div");
      line.innerHTML = '<span class="ts">' + ev.timestamp + '</span> <span class="kind">' + ev.kind + '</span> ' + ev.detail;
      log.appendChild(line);
      window.scrollTo(0, document.body.scrollHeight);
    };
  </script>
</body>
</html>
`
