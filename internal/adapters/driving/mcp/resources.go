package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for chunkroute resources.
	uriScheme = "chunkroute://"

	manifestMIMEType = "text/tab-separated-values"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "manifests",
		Name:        "manifests",
		Description: "Manifests imported into the local store",
		MIMEType:    "application/json",
	}, s.handleManifestsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "manifests/{name}",
		Name:        "manifest",
		Description: "A stored manifest in its tab-separated file form",
		MIMEType:    manifestMIMEType,
	}, s.handleManifestResource)
}

// handleManifestsResource returns a summary of every stored manifest.
func (s *Server) handleManifestsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos, err := s.ports.Manifest.List(ctx)
	if errors.Is(err, domain.ErrNotImplemented) {
		infos = nil
	} else if err != nil {
		return nil, fmt.Errorf("listing manifests: %w", err)
	}

	type manifestInfo struct {
		Name       string    `json:"name"`
		ID         string    `json:"id"`
		ImageSize  int64     `json:"image_size"`
		ChunkCount int       `json:"chunk_count"`
		CreatedAt  time.Time `json:"created_at"`
		URI        string    `json:"uri"`
	}

	list := make([]manifestInfo, len(infos))
	for i, info := range infos {
		list[i] = manifestInfo{
			Name:       info.Name,
			ID:         info.ID,
			ImageSize:  info.ImageSize,
			ChunkCount: info.ChunkCount,
			CreatedAt:  info.CreatedAt,
			URI:        uriScheme + "manifests/" + info.Name,
		}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manifests: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleManifestResource returns one stored manifest in file form.
func (s *Server) handleManifestResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractManifestName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var buf bytes.Buffer
	if err := s.ports.Manifest.Export(ctx, name, &buf); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNotImplemented) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("exporting manifest: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: manifestMIMEType,
			Text:     buf.String(),
		}},
	}, nil
}

// extractManifestName extracts the name from a URI like chunkroute://manifests/{name}.
func extractManifestName(uri string) string {
	const prefix = uriScheme + "manifests/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
