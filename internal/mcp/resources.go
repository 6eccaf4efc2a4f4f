package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/peixotorms/component-index/internal/catalog"
)

// Resource URI prefixes. A framework resource is its component listing; a
// file resource is any file below the component root.
const (
	frameworkURIPrefix = "components://framework/"
	fileURIPrefix      = "components://file/"
)

// FrameworkURI returns the resource URI of a framework listing.
func FrameworkURI(id string) string { return frameworkURIPrefix + id }

// FileURI returns the resource URI of a component file.
func FileURI(rel string) string { return fileURIPrefix + rel }

func (s *Server) handleListResources() ResourcesListResult {
	summaries := s.cat.Frameworks()
	out := make([]MCPResource, 0, len(summaries))
	for _, fw := range summaries {
		out = append(out, MCPResource{
			URI:         FrameworkURI(fw.ID),
			Name:        fw.Name,
			MIMEType:    "text/markdown",
			Description: fmt.Sprintf("%d components (%s)", fw.Variants, fw.Deps),
		})
	}
	return ResourcesListResult{Resources: out}
}

func (s *Server) handleReadResource(ctx context.Context, params json.RawMessage) (any, *JSONRPCError) {
	var p ResourceReadParams
	if err := json.Unmarshal(params, &p); err != nil || p.URI == "" {
		return nil, &JSONRPCError{Code: CodeInvalidParams, Message: "Invalid params"}
	}

	if id, ok := strings.CutPrefix(p.URI, frameworkURIPrefix); ok {
		if _, known := s.cat.Framework(id); !known {
			return nil, &JSONRPCError{Code: CodeResourceNotFound, Message: "Unknown framework: " + id}
		}
		args, _ := json.Marshal(map[string]string{"framework": id})
		text, err := s.registry.Execute(ctx, "list_components", args)
		if err != nil {
			return nil, &JSONRPCError{Code: CodeInternalError, Message: err.Error()}
		}
		return ResourceReadResult{Contents: []MCPResourceContent{{
			URI:      p.URI,
			MIMEType: "text/markdown",
			Text:     text,
		}}}, nil
	}

	if rel, ok := strings.CutPrefix(p.URI, fileURIPrefix); ok {
		comp, err := s.cat.GetByPath(rel)
		switch {
		case errors.Is(err, catalog.ErrInvalidPath):
			return nil, &JSONRPCError{Code: CodeInvalidParams, Message: "Invalid path: " + rel}
		case errors.Is(err, catalog.ErrNotFound):
			return nil, &JSONRPCError{Code: CodeResourceNotFound, Message: "Component not found: " + rel}
		case err != nil:
			s.log.Error("read resource", "uri", p.URI, "error", err)
			return nil, &JSONRPCError{Code: CodeInternalError, Message: "Internal error"}
		}
		return ResourceReadResult{Contents: []MCPResourceContent{{
			URI:      p.URI,
			MIMEType: mimeType(comp.RelPath),
			Text:     comp.Content,
		}}}, nil
	}

	return nil, &JSONRPCError{Code: CodeResourceNotFound, Message: "Unknown resource: " + p.URI}
}

func mimeType(rel string) string {
	if t := mime.TypeByExtension(path.Ext(rel)); t != "" {
		return t
	}
	return "text/plain"
}
