// Package wire defines the cross-process inspection protocol: the record
// types exchanged between a controller bridge and an inspector endpoint,
// the request/response/notification envelopes, and the newline-delimited
// JSON codec that frames them.
//
// # Frame format
//
// Each message is exactly one UTF-8 JSON object followed by a single '\n'.
// A leading UTF-8 BOM (U+FEFF) on a received frame is stripped before
// parsing; a trailing '\r' before '\n' is tolerated. There are no length
// prefixes — the newline is the only delimiter.
//
// # Envelopes
//
//	Request:      {"type":"<Kind>","data":{"requestId":"...", ...}}
//	Response:     {"requestId":"...","success":true|false,"error":"..."?, ...}
//	Notification: {"notificationType":"PropertyChanged"|"BindingError", ...}
//
// Field names are lower-camel throughout. Unknown input fields are
// ignored; omitted optional output fields are dropped from the wire.
package wire
