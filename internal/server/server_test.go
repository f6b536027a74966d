package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/squall/internal/protocol"
)

// frameAll encodes msgs as a Content-Length framed request stream.
func frameAll(t *testing.T, msgs ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		require.NoError(t, err)
		fmt.Fprintf(&buf, "Content-Length: %d\r\n\r\n%s", len(payload), payload)
	}
	return &buf
}

// readAll decodes every framed message the server wrote.
func readAll(t *testing.T, out *bytes.Buffer) []map[string]json.RawMessage {
	t.Helper()
	tr := NewTransport(out, io.Discard)
	var msgs []map[string]json.RawMessage
	for {
		payload, err := tr.Read()
		if err != nil {
			break
		}
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(payload, &m))
		msgs = append(msgs, m)
	}
	return msgs
}

func request(id int, method string, params any) map[string]any {
	m := map[string]any{"jsonrpc": "2.0", "id": id, "method": method}
	if params != nil {
		m["params"] = params
	}
	return m
}

func notify(method string, params any) map[string]any {
	return map[string]any{"jsonrpc": "2.0", "method": method, "params": params}
}

func hostURI(t *testing.T) protocol.DocumentURI {
	t.Helper()
	return protocol.FilePathToURI(filepath.Join(t.TempDir(), "notes.md"))
}

func runServer(t *testing.T, in *bytes.Buffer) []map[string]json.RawMessage {
	return runServerWith(t, in, DefaultConfig())
}

func runServerWith(t *testing.T, in *bytes.Buffer, cfg Config) []map[string]json.RawMessage {
	t.Helper()
	var out bytes.Buffer
	log := NewLogger(LogLevelError, io.Discard)
	srv := New(in, &out, log, cfg, "test")
	require.NoError(t, srv.Run())
	return readAll(t, &out)
}

func TestServerInitializeHandshake(t *testing.T) {
	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		notify("initialized", nil),
		request(2, "shutdown", nil),
		notify("exit", nil),
	)

	msgs := runServer(t, in)
	require.NotEmpty(t, msgs)

	var result protocol.InitializeResult
	require.NoError(t, json.Unmarshal(msgs[0]["result"], &result))
	assert.Equal(t, protocol.TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Contains(t, result.Capabilities.CompletionProvider.TriggerCharacters, ".")
	assert.Equal(t, Name, result.ServerInfo.Name)
}

func TestServerPublishesDiagnosticsOnOpen(t *testing.T) {
	uri := hostURI(t)
	host := "# T\n```squall\nlet x = 1\n)\n```\n"

	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		notify("textDocument/didOpen", protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "markdown", Version: 1, Text: host},
		}),
		notify("exit", nil),
	)

	msgs := runServer(t, in)

	var published *protocol.PublishDiagnosticsParams
	for _, m := range msgs {
		if method, ok := m["method"]; ok && string(method) == `"textDocument/publishDiagnostics"` {
			published = &protocol.PublishDiagnosticsParams{}
			require.NoError(t, json.Unmarshal(m["params"], published))
		}
	}
	require.NotNil(t, published, "didOpen must publish diagnostics")
	assert.Equal(t, uri, published.URI)
	require.Len(t, published.Diagnostics, 1)
	// Embedded layout matches the host, so the error lands on host line 3.
	assert.Equal(t, 3, published.Diagnostics[0].Range.Start.Line)
	assert.Equal(t, "squall", published.Diagnostics[0].Source)
}

func TestServerDidChangeReplacesText(t *testing.T) {
	uri := hostURI(t)
	broken := "```squall\n)\n```\n"
	fixed := "```squall\nlet x = 1\n```\n"

	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		notify("textDocument/didOpen", protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "markdown", Version: 1, Text: broken},
		}),
		notify("textDocument/didChange", protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
				Version:                2,
			},
			ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: fixed}},
		}),
		notify("exit", nil),
	)

	// The unit cache is wall-clock based; shrink the TTL so the change
	// is rebuilt instead of served the stale unit.
	msgs := runServerWith(t, in, Config{LogLevel: "error", StalenessTTL: "1ns"})

	var published []protocol.PublishDiagnosticsParams
	for _, m := range msgs {
		if method, ok := m["method"]; ok && string(method) == `"textDocument/publishDiagnostics"` {
			var p protocol.PublishDiagnosticsParams
			require.NoError(t, json.Unmarshal(m["params"], &p))
			published = append(published, p)
		}
	}
	require.Len(t, published, 2)
	assert.NotEmpty(t, published[0].Diagnostics)
	assert.Empty(t, published[1].Diagnostics, "fixed text must clear the diagnostics")
	assert.Equal(t, 2, published[1].Version)
}

func TestServerCompletion(t *testing.T) {
	uri := hostURI(t)
	host := "```squall\nlet obj = {foo: 1, bar: 2}\nobj.\n```\n"

	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		notify("textDocument/didOpen", protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "markdown", Version: 1, Text: host},
		}),
		request(2, "textDocument/completion", protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: 2, Character: 4},
			},
		}),
		notify("exit", nil),
	)

	msgs := runServer(t, in)

	var list *protocol.CompletionList
	for _, m := range msgs {
		if id, ok := m["id"]; ok && string(id) == "2" {
			list = &protocol.CompletionList{}
			require.NoError(t, json.Unmarshal(m["result"], list))
		}
	}
	require.NotNil(t, list, "completion request must get a response")
	assert.False(t, list.IsIncomplete)

	labels := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "foo")
	assert.Contains(t, labels, "bar")
}

func TestServerUnknownMethod(t *testing.T) {
	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		request(2, "textDocument/hover", map[string]any{}),
		notify("exit", nil),
	)

	msgs := runServer(t, in)

	var sawError bool
	for _, m := range msgs {
		if id, ok := m["id"]; ok && string(id) == "2" {
			_, sawError = m["error"]
		}
	}
	assert.True(t, sawError, "unknown request methods must get a method-not-found error")
}

func TestServerCompletionForUnopenedDocument(t *testing.T) {
	in := frameAll(t,
		request(1, "initialize", protocol.InitializeParams{}),
		request(2, "textDocument/completion", protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: "file:///never-opened.md"},
			},
		}),
		notify("exit", nil),
	)

	msgs := runServer(t, in)

	var list *protocol.CompletionList
	for _, m := range msgs {
		if id, ok := m["id"]; ok && string(id) == "2" {
			list = &protocol.CompletionList{}
			require.NoError(t, json.Unmarshal(m["result"], list))
		}
	}
	require.NotNil(t, list)
	assert.Empty(t, list.Items)
}
