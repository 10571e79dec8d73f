package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/validate"
)

// CatalogueURI is the resource listing every registered tool.
const CatalogueURI = "workbench://tools"

// ArtifactURIPrefix prefixes the URI of embedded non-image artifacts.
const ArtifactURIPrefix = "workbench://artifacts/"

// Runner is the part of the toolkit exposed over MCP.
type Runner interface {
	Tools() []domain.Tool
	Run(ctx context.Context, id domain.ToolID, in domain.Input) domain.Result
}

// Server wraps the toolkit and exposes every tool as an MCP tool.
type Server struct {
	runner    Runner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for rejected input and transport events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(runner Runner, version string, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("workbench-mcp", version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func base64Encoded(schema map[string]any) {
	schema["contentEncoding"] = "base64"
}

// toolOptions maps tool metadata to the MCP input schema.
func toolOptions(tool domain.Tool) []mcp.ToolOption {
	desc := tool.Title
	if tool.Description != "" {
		desc = tool.Title + ": " + tool.Description
	}
	opts := []mcp.ToolOption{mcp.WithDescription(desc)}

	for _, p := range tool.Params {
		props := []mcp.PropertyOption{}
		if p.Description != "" {
			props = append(props, mcp.Description(p.Description))
		}
		if p.Required {
			props = append(props, mcp.Required())
		}

		switch p.Type {
		case domain.ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case domain.ParamBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case domain.ParamBytes:
			props = append(props, base64Encoded)
			opts = append(opts, mcp.WithString(p.Name, props...))
		default:
			if len(p.Enum) > 0 {
				props = append(props, mcp.Enum(p.Enum...))
			}
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return opts
}

func (s *Server) registerTools() {
	for _, tool := range s.runner.Tools() {
		s.mcpServer.AddTool(mcp.NewTool(string(tool.ID), toolOptions(tool)...), s.handleTool(tool.ID))
	}
}

func (s *Server) handleTool(id domain.ToolID) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := domain.Input(request.GetArguments())
		clean, err := validate.SanitizeFields(in, validate.MaxInputSize())
		if err != nil {
			s.logger.Warn("MCP: Input rejected", "tool", id, "error", err)
			return mcp.NewToolResultErrorf("input rejected: %v", err), nil
		}
		return toResult(s.runner.Run(ctx, id, clean)), nil
	}
}

// toResult maps a Result to MCP content. Image artifacts become image
// content; other artifacts are embedded as base64 blobs.
func toResult(res domain.Result) *mcp.CallToolResult {
	if !res.OK || res.Output == nil {
		return mcp.NewToolResultError(res.Error)
	}

	out := res.Output
	var result *mcp.CallToolResult
	switch art := out.Artifact; {
	case art == nil:
		result = mcp.NewToolResultText(out.Text)
	case strings.HasPrefix(art.MIMEType, "image/"):
		result = mcp.NewToolResultImage(out.Text, base64.StdEncoding.EncodeToString(art.Data), art.MIMEType)
	default:
		result = mcp.NewToolResultResource(out.Text, mcp.BlobResourceContents{
			URI:      ArtifactURIPrefix + art.Name,
			MIMEType: art.MIMEType,
			Blob:     base64.StdEncoding.EncodeToString(art.Data),
		})
	}
	if len(out.Fields) > 0 {
		result.StructuredContent = out.Fields
	}
	return result
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogueURI, "Tool Catalogue",
		mcp.WithResourceDescription("Every registered tool with its panel and parameters"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalogue)
}

func (s *Server) readCatalogue(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.runner.Tools())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalogue: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogueURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
