package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bom is the UTF-8 encoding of U+FEFF.
var bom = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark from frame, if present.
func StripBOM(frame []byte) []byte {
	if bytes.HasPrefix(frame, bom) {
		return frame[len(bom):]
	}
	return frame
}

// envelopeSchemaJSON constrains the outermost request shape: a known
// `type` tag and a `data` object carrying at least a string `requestId`.
// Validating this before a handler ever sees the payload turns a stray
// malformed frame into a clean InvalidRequest instead of a panic deep in
// kind-specific decoding.
const envelopeSchemaJSON = `{
	"type": "object",
	"required": ["type", "data"],
	"properties": {
		"type": {
			"type": "string",
			"enum": ["GetVisualTree","GetLogicalTree","GetElementProperties","FindElements","GetBindings","GetBindingErrors","GetResources","GetStyles","HighlightElement","GetLayoutInfo","WatchProperty","ExportTree"]
		},
		"data": {
			"type": "object",
			"required": ["requestId"],
			"properties": {
				"requestId": {"type": "string"}
			}
		}
	}
}`

// EnvelopeSchema compiles and returns the request-envelope schema. It is
// safe to share across goroutines once compiled; callers typically compile
// it once at endpoint startup.
func EnvelopeSchema() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(envelopeSchemaJSON), &doc); err != nil {
		return nil, fmt.Errorf("wire: unmarshal envelope schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("inspector-envelope.json", doc); err != nil {
		return nil, fmt.Errorf("wire: add envelope schema resource: %w", err)
	}
	schema, err := c.Compile("inspector-envelope.json")
	if err != nil {
		return nil, fmt.Errorf("wire: compile envelope schema: %w", err)
	}
	return schema, nil
}

// ValidateEnvelope checks frame (BOM already stripped) against schema and
// returns a descriptive error if it does not conform.
func ValidateEnvelope(schema *jsonschema.Schema, frame []byte) error {
	var doc any
	if err := json.Unmarshal(frame, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("envelope validation: %w", err)
	}
	return nil
}

// DecodeRequestEnvelope unmarshals a validated frame into its envelope
// shape, leaving Data raw for kind-specific decoding by the handler.
func DecodeRequestEnvelope(frame []byte) (RequestEnvelope, error) {
	var env RequestEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return RequestEnvelope{}, err
	}
	return env, nil
}

// readBufSize is the initial capacity of a FrameReader's accumulation
// buffer; it grows as needed for larger frames (e.g. deep ExportTree
// payloads).
const readBufSize = 4096

// FrameReader performs the byte-level accumulate-until-newline framing
// required by the protocol. It never wraps conn in a buffered text
// reader: buffered text wrappers over bidirectional pipes are the known
// deadlock hazard the marshaler and this reader are built to avoid.
type FrameReader struct {
	r   io.Reader
	buf []byte // bytes read but not yet consumed into a frame
}

// NewFrameReader wraps r (typically a net.Conn) for frame-at-a-time reads.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r, buf: make([]byte, 0, readBufSize)}
}

// ReadFrame returns the next '\n'-delimited frame with the BOM stripped
// and a trailing '\r' trimmed. It returns io.EOF once the peer has closed
// the connection and no further frame is available.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	for {
		if idx := bytes.IndexByte(fr.buf, '\n'); idx >= 0 {
			frame := fr.buf[:idx]
			frame = bytes.TrimSuffix(frame, []byte{'\r'})
			rest := make([]byte, len(fr.buf)-idx-1)
			copy(rest, fr.buf[idx+1:])
			fr.buf = rest
			return StripBOM(frame), nil
		}

		chunk := make([]byte, readBufSize)
		n, err := fr.r.Read(chunk)
		if n > 0 {
			fr.buf = append(fr.buf, chunk[:n]...)
		}
		if err != nil {
			return nil, err
		}
	}
}

// flusher is implemented by writers that buffer internally and need an
// explicit flush. Direct net.Conn writes never need one; this exists so a
// caller that wraps a conn for testing (e.g. bufio for a unidirectional
// test fixture) still gets its data pushed out immediately.
type flusher interface {
	Flush() error
}

// FrameWriter writes one frame per call and, if the Writer buffers
// internally, flushes explicitly before returning — matching the
// endpoint's "encode, write, explicit flush" handler contract.
type FrameWriter struct {
	w io.Writer
}

// NewFrameWriter wraps w (typically a net.Conn) for frame-at-a-time writes.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame writes payload followed by '\n' and flushes.
func (fw *FrameWriter) WriteFrame(payload []byte) error {
	if _, err := fw.w.Write(payload); err != nil {
		return err
	}
	if _, err := fw.w.Write([]byte{'\n'}); err != nil {
		return err
	}
	if f, ok := fw.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// EncodeResponse marshals v (normally a struct embedding ResponseEnvelope)
// to JSON, ready for FrameWriter.WriteFrame.
func EncodeResponse(v any) ([]byte, error) {
	return json.Marshal(v)
}

// EncodeNotification marshals v (normally a struct embedding
// NotificationEnvelope) to JSON, ready for FrameWriter.WriteFrame.
func EncodeNotification(v any) ([]byte, error) {
	return json.Marshal(v)
}
