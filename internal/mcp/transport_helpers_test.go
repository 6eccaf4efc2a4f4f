package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// StreamTransport speaks line-delimited JSON-RPC over a reader/writer pair,
// such as the stdin/stdout of a server process or the ends of an io.Pipe.
type StreamTransport struct {
	w      io.WriteCloser
	r      *bufio.Scanner
	closer io.Closer // optional, closed after w
	mu     sync.Mutex
}

// NewStreamTransport returns a transport that writes requests to w and
// reads responses from r. If r is also an io.Closer it is closed by Close.
func NewStreamTransport(r io.Reader, w io.WriteCloser) *StreamTransport {
	t := &StreamTransport{
		w: w,
		r: bufio.NewScanner(r),
	}
	if c, ok := r.(io.Closer); ok {
		t.closer = c
	}
	// Increase scanner buffer for large component files.
	t.r.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	return t
}

// Send writes a JSON-RPC request and reads the next response line.
func (t *StreamTransport) Send(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.write(req); err != nil {
		return nil, err
	}

	// Read response line, respecting context cancellation.
	type scanResult struct {
		line []byte
		err  error
	}
	resultCh := make(chan scanResult, 1)

	go func() {
		if t.r.Scan() {
			line := make([]byte, len(t.r.Bytes()))
			copy(line, t.r.Bytes())
			resultCh <- scanResult{line: line}
		} else {
			err := t.r.Err()
			if err == nil {
				err = io.EOF
			}
			resultCh <- scanResult{err: err}
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultCh:
		if result.err != nil {
			return nil, fmt.Errorf("read response: %w", result.err)
		}

		var resp JSONRPCResponse
		if err := json.Unmarshal(result.line, &resp); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w (raw: %s)", err, string(result.line))
		}
		return &resp, nil
	}
}

// Notify writes a JSON-RPC notification (no response expected).
func (t *StreamTransport) Notify(_ context.Context, req *JSONRPCRequest) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.write(req)
}

// Close closes the writer, which signals EOF to the server, and the reader.
func (t *StreamTransport) Close() error {
	err := t.w.Close()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTransport) write(req *JSONRPCRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := t.w.Write(data); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}
