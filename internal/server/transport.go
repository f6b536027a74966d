package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"
)

// JSON-RPC error codes the server emits.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// Transport frames JSON-RPC messages with Content-Length headers over a
// byte stream, stdin/stdout in production. Reads are single-threaded;
// writes are serialized so notification publishing cannot interleave
// with a response.
type Transport struct {
	reader *bufio.Reader

	writeMu sync.Mutex
	writer  io.Writer
}

// NewTransport returns a transport reading from r and writing to w.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	return &Transport{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Read returns the payload of the next framed message.
func (t *Transport) Read() ([]byte, error) {
	length := -1
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed header %q", line)
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, zerr.Wrap(err, "bad Content-Length")
			}
		}
	}
	if length < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(t.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Write frames and writes one message.
func (t *Transport) Write(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return zerr.Wrap(err, "encode message")
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := fmt.Fprintf(t.writer, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err = t.writer.Write(payload)
	return err
}

// incoming is the peeked identity of one request or notification. The
// raw payload is kept so params decode lazily, per handler.
type incoming struct {
	payload []byte
	method  string
	id      any
	hasID   bool
}

// peek reads the method and id of a message without decoding the whole
// body.
func peek(payload []byte) (incoming, error) {
	if !gjson.ValidBytes(payload) {
		return incoming{}, fmt.Errorf("invalid JSON payload")
	}
	in := incoming{
		payload: payload,
		method:  gjson.GetBytes(payload, "method").String(),
	}
	if id := gjson.GetBytes(payload, "id"); id.Exists() {
		in.id = id.Value()
		in.hasID = true
	}
	return in, nil
}

// params decodes the message params into v.
func (in incoming) params(v any) error {
	raw := gjson.GetBytes(in.payload, "params")
	if !raw.Exists() {
		return nil
	}
	return json.Unmarshal([]byte(raw.Raw), v)
}

// response is an outgoing successful JSON-RPC response. Result is
// always serialized, as null when the method has nothing to return.
type response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result"`
}

// errorResponse is an outgoing failed JSON-RPC response.
type errorResponse struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      any            `json:"id"`
	Error   *responseError `json:"error"`
}

// responseError is the error member of a failed response.
type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// notification is an outgoing JSON-RPC notification.
type notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}
