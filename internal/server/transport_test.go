package server

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	out := NewTransport(bytes.NewReader(nil), &buf)
	require.NoError(t, out.Write(map[string]any{"jsonrpc": "2.0", "method": "initialized"}))

	in := NewTransport(&buf, io.Discard)
	payload, err := in.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"initialized"}`, string(payload))
}

func TestTransportReadMissingContentLength(t *testing.T) {
	in := NewTransport(bytes.NewReader([]byte("\r\n{}")), io.Discard)
	_, err := in.Read()
	assert.Error(t, err)
}

func TestTransportReadEOF(t *testing.T) {
	in := NewTransport(bytes.NewReader(nil), io.Discard)
	_, err := in.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTransportIgnoresExtraHeaders(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"shutdown"}`
	raw := fmt.Sprintf("Content-Type: application/vscode-jsonrpc\r\nContent-Length: %d\r\n\r\n%s", len(body), body)

	in := NewTransport(bytes.NewReader([]byte(raw)), io.Discard)
	payload, err := in.Read()
	require.NoError(t, err)
	assert.Equal(t, body, string(payload))
}

func TestPeek(t *testing.T) {
	in, err := peek([]byte(`{"jsonrpc":"2.0","id":7,"method":"shutdown"}`))
	require.NoError(t, err)
	assert.Equal(t, "shutdown", in.method)
	assert.True(t, in.hasID)
	assert.EqualValues(t, 7, in.id)

	in, err = peek([]byte(`{"jsonrpc":"2.0","method":"exit"}`))
	require.NoError(t, err)
	assert.False(t, in.hasID)

	_, err = peek([]byte("not json"))
	assert.Error(t, err)
}
