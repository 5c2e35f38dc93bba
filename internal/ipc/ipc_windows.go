//go:build windows

package ipc

import (
	"fmt"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

func pipePath(name string) string {
	return `\\.\pipe\` + name
}

func listenRendezvous(name string) (net.Listener, error) {
	l, err := winio.ListenPipe(pipePath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen %s: %w", name, err)
	}
	return l, nil
}

func dialRendezvous(name string, timeout time.Duration) (net.Conn, error) {
	conn, err := winio.DialPipe(pipePath(name), &timeout)
	if err != nil {
		return nil, fmt.Errorf("ipc: dial %s: %w", name, err)
	}
	return conn, nil
}
