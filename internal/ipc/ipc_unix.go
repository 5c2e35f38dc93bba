//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// socketPath maps a rendezvous name to a fixed "<name>.sock" path under
// the OS temp dir. The same name always yields the same path, so a socket
// left behind by a killed host process is removed by listenRendezvous.
func socketPath(name string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s.sock", name))
}

func listenRendezvous(name string) (net.Listener, error) {
	path := socketPath(name)
	// A prior host process that died without closing its listener leaves
	// the socket file behind; net.Listen("unix", ...) fails with
	// "address already in use" unless it's removed first.
	_ = os.Remove(path)

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen %s: %w", path, err)
	}
	return &unixListener{Listener: l, path: path}, nil
}

// unixListener removes its socket file on Close so a clean shutdown never
// leaves a stale rendezvous path for the next process using this pid.
type unixListener struct {
	net.Listener
	path string
}

func (l *unixListener) Close() error {
	err := l.Listener.Close()
	_ = os.Remove(l.path)
	return err
}

func dialRendezvous(name string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("unix", socketPath(name), timeout)
	if err != nil {
		return nil, fmt.Errorf("ipc: dial %s: %w", name, err)
	}
	return conn, nil
}
