package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/tools"
)

// ServerName is reported in the initialize handshake.
const ServerName = "component-index"

const maxMessageSize = 10 * 1024 * 1024

// Server answers MCP requests one at a time from a line-delimited stream.
type Server struct {
	registry *tools.Registry
	cat      *catalog.Catalog
	log      *slog.Logger
	version  string
}

// NewServer creates a server that exposes the tools in registry and the
// files of cat as resources.
func NewServer(cat *catalog.Catalog, registry *tools.Registry, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		registry: registry,
		cat:      cat,
		log:      log,
		version:  version,
	}
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is cancelled. Each request is handled to completion
// before the next is read.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	// Stops the reader goroutine on every return path.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type scanResult struct {
		line []byte
		err  error
	}
	lines := make(chan scanResult)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			// Copy the bytes since the scanner reuses the buffer.
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- scanResult{line: line}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				return fmt.Errorf("read request: %w", res.err)
			}
			line := bytes.TrimSpace(res.line)
			if len(line) == 0 {
				continue
			}
			resp := s.HandleMessage(ctx, line)
			if resp == nil {
				continue
			}
			if err := writeMessage(w, resp); err != nil {
				return err
			}
		}
	}
}

// HandleMessage decodes one raw JSON-RPC message and returns the response,
// or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.log.Warn("malformed request", "error", err)
		return errorResponse(nil, CodeParseError, "Parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid Request")
	}
	return s.Handle(ctx, &req)
}

// Handle dispatches a decoded request.
func (s *Server) Handle(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	start := time.Now()
	result, rpcErr := s.dispatch(ctx, req)
	s.log.Debug("handled request", "method", req.Method, "id", string(req.ID), "duration", time.Since(start))

	if req.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		return &JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.log.Error("marshal result", "method", req.Method, "error", err)
		return errorResponse(req.ID, CodeInternalError, "Internal error")
	}
	return &JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: data}
}

func (s *Server) dispatch(ctx context.Context, req *JSONRPCRequest) (any, *JSONRPCError) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.Params)
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return s.handleListTools(), nil
	case "tools/call":
		return s.handleCallTool(ctx, req.Params)
	case "resources/list":
		return s.handleListResources(), nil
	case "resources/read":
		return s.handleReadResource(ctx, req.Params)
	}
	if req.IsNotification() {
		// notifications/initialized, notifications/cancelled, ...
		return nil, nil
	}
	return nil, &JSONRPCError{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
}

func (s *Server) handleInitialize(params json.RawMessage) (any, *JSONRPCError) {
	var p InitializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &JSONRPCError{Code: CodeInvalidParams, Message: "Invalid params"}
		}
	}
	s.log.Info("client connected", "client", p.ClientInfo.Name, "clientVersion", p.ClientInfo.Version, "protocol", p.ProtocolVersion)

	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Resources: &ResourceCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
		Instructions: "Browse UI component snippets: list_frameworks, then list_components and get_component, or search_components and get_component_by_path.",
	}, nil
}

func (s *Server) handleListTools() ToolsListResult {
	defs := s.registry.Definitions()
	out := make([]MCPToolDef, 0, len(defs))
	for _, d := range defs {
		out = append(out, MCPToolDef{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		})
	}
	return ToolsListResult{Tools: out}
}

func (s *Server) handleCallTool(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
	var p ToolCallParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, &JSONRPCError{Code: CodeInvalidParams, Message: "Invalid params"}
	}

	text, err := s.registry.Execute(ctx, p.Name, p.Arguments)
	if err != nil {
		s.log.Debug("tool call failed", "tool", p.Name, "error", err)
		return ToolCallResult{
			Content: []ToolResultContent{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil
	}
	return ToolCallResult{
		Content: []ToolResultContent{{Type: "text", Text: text}},
	}, nil
}

func writeMessage(w io.Writer, resp *JSONRPCResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func errorResponse(id json.RawMessage, code int, message string) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	}
}
