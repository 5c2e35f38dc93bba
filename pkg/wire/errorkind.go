package wire

// ErrorKind is the closed vocabulary of error kinds this protocol
// defines. It is carried as metadata alongside the wire-level `error`
// string so callers that need to branch on kind (rather than match
// error text) can.
type ErrorKind string

const (
	KindInvalidRequest      ErrorKind = "InvalidRequest"
	KindMissingField        ErrorKind = "MissingField"
	KindNotFound            ErrorKind = "NotFound"
	KindNotRenderable       ErrorKind = "NotRenderable"
	KindPropertyNotFound    ErrorKind = "PropertyNotFound"
	KindTimeout             ErrorKind = "Timeout"
	KindHandlerError        ErrorKind = "HandlerError"
	KindProcessGone         ErrorKind = "ProcessGone"
	KindInspectorUnreachable ErrorKind = "InspectorUnreachable"
	KindConnectionTimeout   ErrorKind = "ConnectionTimeout"
	KindRequestTimeout      ErrorKind = "RequestTimeout"
	KindProtocolError       ErrorKind = "ProtocolError"
)

// Error is a classified protocol error: a Kind from the closed taxonomy,
// a human-readable Message, and an optional Remediation sentence telling
// the caller how to recover (populated for controller-side kinds).
type Error struct {
	Kind        ErrorKind
	Message     string
	Remediation string
}

func (e *Error) Error() string {
	if e.Remediation != "" {
		return e.Message + " " + e.Remediation
	}
	return e.Message
}

// NewError builds an *Error with no remediation sentence.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewRemediatedError builds an *Error carrying a remediation sentence.
func NewRemediatedError(kind ErrorKind, message, remediation string) *Error {
	return &Error{Kind: kind, Message: message, Remediation: remediation}
}
