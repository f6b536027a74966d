// Package server hosts the language service over stdio JSON-RPC. It
// syncs whole host documents, extracts their embedded regions, and
// dispatches validation and completion to the language modes.
package server

import (
	"errors"
	"io"
	"sort"

	"github.com/dshills/squall/internal/bridge"
	"github.com/dshills/squall/internal/embedded"
	"github.com/dshills/squall/internal/mode"
	"github.com/dshills/squall/internal/protocol"
	"github.com/dshills/squall/internal/squall"
)

// Name identifies the server in the initialize handshake.
const Name = "squall-ls"

// Server handles one editor connection. Requests are processed one at a
// time in arrival order; the modes it owns rely on that.
type Server struct {
	transport *Transport
	log       *Logger
	extractor *embedded.Extractor
	modes     *mode.Registry
	version   string

	docs     map[protocol.DocumentURI]protocol.TextDocumentItem
	shutdown bool
}

// New returns a server reading requests from r and writing to w. The
// configuration fixes the staleness TTL and completion cap of the
// bridges built for this connection.
func New(r io.Reader, w io.Writer, log *Logger, cfg Config, version string) *Server {
	return &Server{
		transport: NewTransport(r, w),
		log:       log.WithComponent("server"),
		extractor: embedded.New("squall", "lua"),
		modes: mode.NewRegistry(
			mode.NewSquallMode(
				bridge.WithTTL(cfg.TTL()),
				bridge.WithCompletionLimit(cfg.CompletionLimit),
			),
			mode.NewLuaMode(),
		),
		version: version,
		docs:    make(map[protocol.DocumentURI]protocol.TextDocumentItem),
	}
}

// Run processes messages until exit or the stream closes.
func (s *Server) Run() error {
	defer s.modes.Dispose()
	for {
		payload, err := s.transport.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		in, err := peek(payload)
		if err != nil {
			s.log.Warn("dropping unreadable message: %v", err)
			s.replyError(incoming{hasID: true}, codeParseError, "parse error")
			continue
		}

		if s.dispatch(in) {
			return nil
		}
	}
}

// dispatch handles one message, reporting whether the server should
// exit.
func (s *Server) dispatch(in incoming) bool {
	s.log.Debug("handling %q", in.method)

	if s.shutdown && in.method != "exit" {
		s.replyError(in, codeInvalidRequest, "server is shutting down")
		return false
	}

	switch in.method {
	case "initialize":
		s.reply(in, protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncKindFull,
				CompletionProvider: &protocol.CompletionOptions{
					TriggerCharacters: []string{"."},
				},
			},
			ServerInfo: &protocol.ServerInfo{Name: Name, Version: s.version},
		})

	case "initialized":
		// Notification; nothing to do.

	case "shutdown":
		s.shutdown = true
		s.reply(in, nil)

	case "exit":
		return true

	case "textDocument/didOpen":
		var p protocol.DidOpenTextDocumentParams
		if err := in.params(&p); err != nil {
			s.log.Warn("didOpen params: %v", err)
			return false
		}
		s.sync(p.TextDocument)

	case "textDocument/didChange":
		var p protocol.DidChangeTextDocumentParams
		if err := in.params(&p); err != nil {
			s.log.Warn("didChange params: %v", err)
			return false
		}
		if len(p.ContentChanges) == 0 {
			return false
		}
		host, ok := s.docs[p.TextDocument.URI]
		if !ok {
			host = protocol.TextDocumentItem{URI: p.TextDocument.URI, LanguageID: "markdown"}
		}
		// Full sync only: the last change carries the whole new text.
		host.Text = p.ContentChanges[len(p.ContentChanges)-1].Text
		host.Version = p.TextDocument.Version
		s.sync(host)

	case "textDocument/didClose":
		var p protocol.DidCloseTextDocumentParams
		if err := in.params(&p); err != nil {
			s.log.Warn("didClose params: %v", err)
			return false
		}
		s.close(p.TextDocument.URI)

	case "textDocument/completion":
		s.completion(in)

	case "$/cancelRequest", "$/setTrace":
		// Nothing in flight to cancel; requests run to completion.

	default:
		if in.hasID {
			s.replyError(in, codeMethodNotFound, "unsupported method "+in.method)
		}
	}
	return false
}

// sync stores the host document and publishes merged diagnostics from
// every embedded region it contains.
func (s *Server) sync(host protocol.TextDocumentItem) {
	s.docs[host.URI] = host

	merged := []protocol.Diagnostic{}
	for _, sub := range s.extractor.Extract(host.URI, host.Text, host.Version) {
		diags, err := s.modes.Validate(sub)
		if err != nil {
			s.log.Error("validate %s: %v", sub.URI, err)
			continue
		}
		merged = append(merged, diags...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].Range.Start, merged[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})

	s.publish(protocol.PublishDiagnosticsParams{
		URI:         host.URI,
		Version:     host.Version,
		Diagnostics: merged,
	})
}

// close forgets the host document, clears its diagnostics, and notifies
// the owning modes.
func (s *Server) close(uri protocol.DocumentURI) {
	host, ok := s.docs[uri]
	if ok {
		for _, sub := range s.extractor.Extract(host.URI, host.Text, host.Version) {
			s.modes.OnDocumentRemoved(sub)
		}
	}
	delete(s.docs, uri)
	s.publish(protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: []protocol.Diagnostic{}})
}

// completion answers textDocument/completion by handing the request to
// the mode owning the fenced block under the cursor, or the first
// region's mode when the cursor sits outside every block.
func (s *Server) completion(in incoming) {
	var p protocol.CompletionParams
	if err := in.params(&p); err != nil {
		s.replyError(in, codeInvalidRequest, "bad completion params")
		return
	}

	empty := &protocol.CompletionList{Items: []protocol.CompletionItem{}}
	host, ok := s.docs[p.TextDocument.URI]
	if !ok {
		s.reply(in, empty)
		return
	}
	subs := s.extractor.Extract(host.URI, host.Text, host.Version)
	if len(subs) == 0 {
		s.reply(in, empty)
		return
	}

	// Embedded documents preserve host layout, so the host position is
	// used verbatim; only mode selection needs the byte offset.
	offset := squall.NewLineMap(host.Text).Offset(p.Position.Line, p.Position.Character)
	target := subs[0]
	if lang := s.extractor.RegionAt(host.Text, offset); lang != "" {
		for _, sub := range subs {
			if sub.LanguageID == lang {
				target = sub
				break
			}
		}
	}

	list, err := s.modes.Complete(target, p.Position)
	if err != nil {
		s.log.Error("complete %s: %v", target.URI, err)
		s.replyError(in, codeInternalError, err.Error())
		return
	}
	s.reply(in, list)
}

func (s *Server) reply(in incoming, result any) {
	if !in.hasID {
		return
	}
	if err := s.transport.Write(response{JSONRPC: "2.0", ID: in.id, Result: result}); err != nil {
		s.log.Error("write response: %v", err)
	}
}

func (s *Server) replyError(in incoming, code int, msg string) {
	if !in.hasID {
		return
	}
	err := s.transport.Write(errorResponse{
		JSONRPC: "2.0",
		ID:      in.id,
		Error:   &responseError{Code: code, Message: msg},
	})
	if err != nil {
		s.log.Error("write error response: %v", err)
	}
}

func (s *Server) publish(params protocol.PublishDiagnosticsParams) {
	err := s.transport.Write(notification{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  params,
	})
	if err != nil {
		s.log.Error("publish diagnostics: %v", err)
	}
}
