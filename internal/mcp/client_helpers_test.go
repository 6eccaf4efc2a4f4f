package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Transport is the interface for sending JSON-RPC messages to an MCP server.
type Transport interface {
	// Send sends a JSON-RPC request and returns the response.
	Send(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error)

	// Notify sends a JSON-RPC notification (no response expected).
	Notify(ctx context.Context, req *JSONRPCRequest) error

	// Close shuts down the transport.
	Close() error
}

// MCPClient talks to a single MCP server over a Transport. The server
// tests use it to exercise the protocol end to end.
type MCPClient struct {
	transport Transport
	nextID    atomic.Int64
	mu        sync.Mutex

	// Negotiated during initialization.
	capabilities ServerCapabilities
	serverInfo   ServerInfo
}

// NewMCPClient creates a new MCP client.
func NewMCPClient(transport Transport) *MCPClient {
	c := &MCPClient{transport: transport}
	c.nextID.Store(1)
	return c
}

// ServerInfo returns the server's self-reported info after initialization.
func (c *MCPClient) ServerInfo() ServerInfo {
	return c.serverInfo
}

// Capabilities returns the negotiated server capabilities.
func (c *MCPClient) Capabilities() ServerCapabilities {
	return c.capabilities
}

// Initialize performs the MCP initialization handshake.
func (c *MCPClient) Initialize(ctx context.Context, clientName, clientVersion string) error {
	params := InitializeParams{
		ProtocolVersion: ProtocolVersion,
		ClientInfo: ClientInfo{
			Name:    clientName,
			Version: clientVersion,
		},
	}

	var result InitializeResult
	if err := c.call(ctx, "initialize", params, &result); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	c.capabilities = result.Capabilities
	c.serverInfo = result.ServerInfo

	notif := &JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}
	if err := c.transport.Notify(ctx, notif); err != nil {
		return fmt.Errorf("send initialized notification: %w", err)
	}

	return nil
}

// Ping checks that the server is responsive.
func (c *MCPClient) Ping(ctx context.Context) error {
	if err := c.call(ctx, "ping", struct{}{}, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// ListTools discovers tools from the server.
func (c *MCPClient) ListTools(ctx context.Context) ([]MCPToolDef, error) {
	var result ToolsListResult
	if err := c.call(ctx, "tools/list", struct{}{}, &result); err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}
	return result.Tools, nil
}

// CallTool executes a tool on the server and returns its text content.
// A result flagged isError is returned as an error alongside the text.
func (c *MCPClient) CallTool(ctx context.Context, name string, args any) (string, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal tool arguments: %w", err)
	}

	var result ToolCallResult
	if err := c.call(ctx, "tools/call", ToolCallParams{Name: name, Arguments: argsJSON}, &result); err != nil {
		return "", fmt.Errorf("tools/call %s: %w", name, err)
	}

	text := extractTexts(result.Content)
	if result.IsError {
		return text, fmt.Errorf("tool %s: %s", name, text)
	}
	return text, nil
}

// ListResources lists resources from the server.
func (c *MCPClient) ListResources(ctx context.Context) ([]MCPResource, error) {
	var result ResourcesListResult
	if err := c.call(ctx, "resources/list", struct{}{}, &result); err != nil {
		return nil, fmt.Errorf("resources/list: %w", err)
	}
	return result.Resources, nil
}

// ReadResource reads a resource from the server.
func (c *MCPClient) ReadResource(ctx context.Context, uri string) ([]MCPResourceContent, error) {
	var result ResourceReadResult
	if err := c.call(ctx, "resources/read", ResourceReadParams{URI: uri}, &result); err != nil {
		return nil, fmt.Errorf("resources/read: %w", err)
	}
	return result.Contents, nil
}

// Close shuts down the transport.
func (c *MCPClient) Close() error {
	return c.transport.Close()
}

// call sends a JSON-RPC request and decodes the result into out (if non-nil).
func (c *MCPClient) call(ctx context.Context, method string, params, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	id := c.nextID.Add(1) - 1
	req := &JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(strconv.FormatInt(id, 10)),
		Method:  method,
		Params:  paramsJSON,
	}

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", method, err)
	}
	return nil
}

// extractTexts concatenates all text content blocks into a single string.
func extractTexts(content []ToolResultContent) string {
	var parts []string
	for _, c := range content {
		if c.Type == "text" && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
