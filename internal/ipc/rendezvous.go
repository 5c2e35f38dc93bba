// Package ipc provides the local, host-only, connection-oriented
// transport behind an inspector endpoint's rendezvous name. It has no
// platform-independent implementation: listenRendezvous and dialRendezvous
// are supplied per-OS (ipc_windows.go uses named pipes via
// go-winio; ipc_unix.go uses a Unix domain socket).
package ipc

import "fmt"

// Name returns the rendezvous name for pid, using prefix (default
// "wpf_inspector") when the caller does not override it.
func Name(prefix string, pid int) string {
	if prefix == "" {
		prefix = "wpf_inspector"
	}
	return fmt.Sprintf("%s_%d", prefix, pid)
}
