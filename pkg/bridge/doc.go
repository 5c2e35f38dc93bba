// Package bridge is the client-side half of the protocol that runs
// inside the AI coding agent's process. It discovers candidate target
// processes, attaches to one by PID or name, and opens a fresh transient
// connection per call rather than holding a long-lived session,
// translating every failure mode into the closed wire.ErrorKind taxonomy
// with a remediation sentence.
package bridge
