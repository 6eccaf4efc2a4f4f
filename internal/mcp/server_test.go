package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"hyperui/application/badges/1.html":      "<span>one</span>",
		"hyperui/application/badges/2.html":      "<span>two</span>",
		"tailwind/plugins/carousel/basic.js":     "export default {}",
		"tailwind/plugins/carousel/variants.css": ".carousel{}",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		os.MkdirAll(filepath.Dir(path), 0755)
		os.WriteFile(path, []byte(content), 0644)
	}

	cat := catalog.Build(root, catalog.DefaultFrameworks(), nil)
	registry := tools.NewRegistry()
	tools.Register(registry, cat)
	return NewServer(cat, registry, nil, "test")
}

// connect runs srv over in-memory pipes and returns an initialized client.
func connect(t *testing.T, srv *Server) *MCPClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ctx, reqR, respW)
		respW.Close()
		done <- err
	}()

	client := NewMCPClient(NewStreamTransport(respR, reqW))
	t.Cleanup(func() {
		client.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after client closed")
		}
		cancel()
	})

	if err := client.Initialize(ctx, "test-client", "1.0.0"); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return client
}

func TestServer_Initialize(t *testing.T) {
	client := connect(t, newTestServer(t))

	if client.ServerInfo().Name != ServerName || client.ServerInfo().Version != "test" {
		t.Errorf("unexpected server info: %+v", client.ServerInfo())
	}
	if client.Capabilities().Tools == nil || client.Capabilities().Resources == nil {
		t.Errorf("expected tools and resources capabilities, got %+v", client.Capabilities())
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestServer_ListTools(t *testing.T) {
	client := connect(t, newTestServer(t))

	defs, err := client.ListTools(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
		if !json.Valid(d.InputSchema) {
			t.Errorf("%s: invalid schema", d.Name)
		}
	}
	if got := strings.Join(names, ","); got != "list_frameworks,list_components,get_component,search_components,get_component_by_path" {
		t.Errorf("unexpected tools: %s", got)
	}
}

func TestServer_CallTools(t *testing.T) {
	client := connect(t, newTestServer(t))
	ctx := context.Background()

	text, err := client.CallTool(ctx, "list_components", map[string]string{"framework": "hyperui", "category": "application"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "**badges** (2): 1, 2") {
		t.Errorf("unexpected listing:\n%s", text)
	}

	text, err = client.CallTool(ctx, "get_component", map[string]string{
		"framework": "hyperui", "category": "application", "component": "badges", "variant": "1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "```html\n<span>one</span>\n```") {
		t.Errorf("unexpected component:\n%s", text)
	}

	text, err = client.CallTool(ctx, "list_components", map[string]string{"framework": "daisyui"})
	if err != nil {
		t.Fatalf("unknown framework should be a text result, got %v", err)
	}
	if !strings.HasPrefix(text, `Unknown framework: "daisyui"`) {
		t.Errorf("unexpected result: %s", text)
	}

	text, err = client.CallTool(ctx, "get_component_by_path", map[string]string{"path": "../../etc/passwd"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text, "Invalid path:") {
		t.Errorf("unexpected result: %s", text)
	}
}

func TestServer_CallToolErrors(t *testing.T) {
	client := connect(t, newTestServer(t))
	ctx := context.Background()

	_, err := client.CallTool(ctx, "search_components", map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "query is required") {
		t.Errorf("expected isError result for missing query, got %v", err)
	}

	_, err = client.CallTool(ctx, "no_such_tool", map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("expected unknown tool error, got %v", err)
	}
}

func TestServer_Resources(t *testing.T) {
	client := connect(t, newTestServer(t))
	ctx := context.Background()

	resources, err := client.ListResources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(resources) != 2 || resources[0].URI != FrameworkURI("hyperui") || resources[1].URI != FrameworkURI("tailwind") {
		t.Fatalf("unexpected resources: %+v", resources)
	}

	contents, err := client.ReadResource(ctx, FrameworkURI("tailwind"))
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 || !strings.Contains(contents[0].Text, "**carousel** (2): basic, variants") {
		t.Errorf("unexpected framework resource: %+v", contents)
	}

	contents, err = client.ReadResource(ctx, FileURI("tailwind/plugins/carousel/variants.css"))
	if err != nil {
		t.Fatal(err)
	}
	if contents[0].Text != ".carousel{}" || !strings.HasPrefix(contents[0].MIMEType, "text/css") {
		t.Errorf("unexpected file resource: %+v", contents[0])
	}

	_, err = client.ReadResource(ctx, FileURI("../secret"))
	var rpcErr *JSONRPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != CodeInvalidParams {
		t.Errorf("expected invalid params for traversal, got %v", err)
	}

	_, err = client.ReadResource(ctx, FileURI("hyperui/none.html"))
	if !errors.As(err, &rpcErr) || rpcErr.Code != CodeResourceNotFound {
		t.Errorf("expected resource not found, got %v", err)
	}

	_, err = client.ReadResource(ctx, FrameworkURI("daisyui"))
	if !errors.As(err, &rpcErr) || rpcErr.Code != CodeResourceNotFound {
		t.Errorf("expected resource not found for unknown framework, got %v", err)
	}
}

func TestHandleMessage_ParseError(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleMessage(context.Background(), []byte(`{not json`))
	if resp == nil || resp.Error == nil || resp.Error.Code != CodeParseError {
		t.Fatalf("expected parse error, got %+v", resp)
	}
	data, _ := json.Marshal(resp)
	if !bytes.Contains(data, []byte(`"id":null`)) {
		t.Errorf("parse error should carry a null id: %s", data)
	}
}

func TestHandleMessage_MethodNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":"abc","method":"prompts/list"}`))
	if resp == nil || resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", resp)
	}
	if string(resp.ID) != `"abc"` {
		t.Errorf("string id should be echoed, got %s", resp.ID)
	}
}

func TestHandleMessage_Notifications(t *testing.T) {
	srv := newTestServer(t)

	for _, msg := range []string{
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":1}}`,
		`{"jsonrpc":"2.0","method":"unknown/notification"}`,
	} {
		if resp := srv.HandleMessage(context.Background(), []byte(msg)); resp != nil {
			t.Errorf("%s: expected no response, got %+v", msg, resp)
		}
	}
}

func TestHandleMessage_InvalidRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleMessage(context.Background(), []byte(`{"jsonrpc":"1.0","id":7,"method":"ping"}`))
	if resp == nil || resp.Error == nil || resp.Error.Code != CodeInvalidRequest {
		t.Fatalf("expected invalid request, got %+v", resp)
	}
}

func TestHandleMessage_InvalidToolParams(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"arguments":{}}}`))
	if resp == nil || resp.Error == nil || resp.Error.Code != CodeInvalidParams {
		t.Fatalf("expected invalid params, got %+v", resp)
	}
}

func TestServe_SkipsBlankLinesAndStopsAtEOF(t *testing.T) {
	srv := newTestServer(t)

	in := strings.NewReader("\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n\n" + `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	var out bytes.Buffer
	if err := srv.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one response, got %d: %q", len(lines), out.String())
	}
	if lines[0] != `{"jsonrpc":"2.0","id":1,"result":{}}` {
		t.Errorf("unexpected response: %s", lines[0])
	}
}

func TestServe_ContextCancel(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	r, w := io.Pipe()
	defer w.Close()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, r, io.Discard) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestServe_ReturnsWriteError(t *testing.T) {
	srv := newTestServer(t)
	broken := errors.New("broken pipe")

	// The reader stays open with a second request queued behind the one
	// whose response fails to write.
	r, w := io.Pipe()
	defer w.Close()
	go func() {
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n")
		io.WriteString(w, `{"jsonrpc":"2.0","id":2,"method":"ping"}`+"\n")
	}()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), r, failingWriter{err: broken}) }()

	select {
	case err := <-done:
		if !errors.Is(err, broken) {
			t.Errorf("expected write error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after a failed write")
	}
}
