package wire

import jsoniter "github.com/json-iterator/go"

// json is the encoding/json-compatible, faster codec used throughout this
// package for per-frame marshal/unmarshal, the same substitution
// wwsheng009-yao makes for its hot JSON paths.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestKind is the closed set of request `type` tags accepted by an
// inspector endpoint.
type RequestKind string

const (
	KindGetVisualTree       RequestKind = "GetVisualTree"
	KindGetLogicalTree      RequestKind = "GetLogicalTree"
	KindGetElementProperties RequestKind = "GetElementProperties"
	KindFindElements        RequestKind = "FindElements"
	KindGetBindings         RequestKind = "GetBindings"
	KindGetBindingErrors    RequestKind = "GetBindingErrors"
	KindGetResources        RequestKind = "GetResources"
	KindGetStyles           RequestKind = "GetStyles"
	KindHighlightElement    RequestKind = "HighlightElement"
	KindGetLayoutInfo       RequestKind = "GetLayoutInfo"
	KindWatchProperty       RequestKind = "WatchProperty"
	KindExportTree          RequestKind = "ExportTree"
)

// validRequestKinds backs Valid(); a map keeps the closed-set check O(1)
// without repeating the literal list.
var validRequestKinds = map[RequestKind]bool{
	KindGetVisualTree:        true,
	KindGetLogicalTree:       true,
	KindGetElementProperties: true,
	KindFindElements:         true,
	KindGetBindings:          true,
	KindGetBindingErrors:     true,
	KindGetResources:         true,
	KindGetStyles:            true,
	KindHighlightElement:     true,
	KindGetLayoutInfo:        true,
	KindWatchProperty:        true,
	KindExportTree:           true,
}

// Valid reports whether k is one of the closed set of request kinds.
func (k RequestKind) Valid() bool { return validRequestKinds[k] }

// NotificationKind is the closed set of unsolicited notification tags.
type NotificationKind string

const (
	NotifyPropertyChanged NotificationKind = "PropertyChanged"
	NotifyBindingError    NotificationKind = "BindingError"
)

// RequestEnvelope is the outermost shape of a client->endpoint message:
// {"type":"<Kind>","data":{...}}. Data is kept raw so the codec can
// schema-validate it before a kind-specific payload is unmarshaled.
type RequestEnvelope struct {
	Type RequestKind     `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

// RequestHeader holds the fields common to every request payload.
type RequestHeader struct {
	RequestID string `json:"requestId"`
}

// ResponseEnvelope is the outermost shape of an endpoint->client message
// that answers a specific request. Handlers embed this anonymously in a
// kind-specific reply struct so encoding/json (and jsoniter, which shares
// its struct-tag semantics) flattens requestId/success/error alongside the
// kind's own fields into one JSON object — a single discriminated-union
// shape without a manual field-merge step.
type ResponseEnvelope struct {
	RequestID string `json:"requestId"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is the reply shape for any handler failure: the envelope
// alone, with Success=false and Error set to a human-readable message.
type ErrorResponse struct {
	ResponseEnvelope
}

// NewErrorResponse builds a failed response envelope for requestID.
func NewErrorResponse(requestID, message string) ErrorResponse {
	return ErrorResponse{ResponseEnvelope{RequestID: requestID, Success: false, Error: message}}
}

// NotificationEnvelope is the outermost shape of an unsolicited
// endpoint->client message. It carries no requestId and no success flag.
type NotificationEnvelope struct {
	NotificationType NotificationKind `json:"notificationType"`
}

// PropertyChangedNotification is the payload of a PropertyChanged
// notification.
type PropertyChangedNotification struct {
	NotificationEnvelope
	WatchID      string `json:"watchId"`
	PropertyName string `json:"propertyName"`
	OldValue     string `json:"oldValue"`
	NewValue     string `json:"newValue"`
	Timestamp    string `json:"timestamp"`
}

// BindingErrorNotification is the payload of a BindingError notification,
// emitted when live streaming of binding errors is enabled for a session.
type BindingErrorNotification struct {
	NotificationEnvelope
	BindingErrorRecord
}
