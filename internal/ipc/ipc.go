package ipc

import (
	"net"
	"time"
)

// Listen opens the rendezvous endpoint identified by name (see Name) and
// returns a net.Listener. Accept returns one net.Conn per attaching
// controller, matching the endpoint state machine's Accepting->Connected
// transition. Platform-specific: ipc_unix.go backs this with a Unix
// domain socket, ipc_windows.go with a named pipe.
func Listen(name string) (net.Listener, error) {
	return listenRendezvous(name)
}

// Dial connects to the rendezvous endpoint identified by name, giving up
// after timeout. Platform-specific: ipc_unix.go dials a Unix domain
// socket, ipc_windows.go dials a named pipe.
func Dial(name string, timeout time.Duration) (net.Conn, error) {
	return dialRendezvous(name, timeout)
}
