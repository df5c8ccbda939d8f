package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunkroute/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions are sent to clients during initialisation.
const instructions = `chunkroute plans which overlapping byte-range chunks to download so that
an image is covered from its first byte to its last with the fewest bytes.
Pass a manifest inline (first line image size, then id<TAB>start<TAB>size
lines) or name a stored manifest listed under chunkroute://manifests.
Planning is exhaustive; large dense manifests can take a long time.`

// shutdownTimeout bounds how long RunHTTP waits for open requests.
const shutdownTimeout = 5 * time.Second

// Server exposes chunk planning over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingPlanService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "chunkroute", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until the context is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serveHTTP(ctx, ln)
}

func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP server shutdown: %v", err)
		}
	}()

	logger.Debug("MCP server listening on %s", ln.Addr())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
