package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/adapters/memory"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/session"
	"github.com/aretw0/workbench/pkg/validate"
)

//go:embed openapi.yaml
var rawSpec []byte

// MaxUploadSize bounds the multipart body accepted by the upload route.
const MaxUploadSize = 32 << 20

// Runner is the part of the toolkit the HTTP API drives.
type Runner interface {
	Tools() []domain.Tool
	Lookup(id domain.ToolID) (domain.Tool, bool)
	Run(ctx context.Context, id domain.ToolID, in domain.Input) domain.Result
}

// Server serves the tool catalogue and per-session panel state.
type Server struct {
	Runner   Runner
	Sessions *session.Manager

	metrics http.Handler
	clock   ports.Clock
	version string
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessions sets the session manager backing the /panels routes.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithClock sets the clock used for the footer year.
func WithClock(c ports.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithVersion sets the application version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the toolkit.
// Without WithSessions, panel state lives in an in-memory store.
func NewHandler(runner Runner, opts ...Option) http.Handler {
	server := &Server{
		Runner:  runner,
		clock:   ports.SystemClock(),
		version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Sessions == nil {
		server.Sessions = session.NewManager(memory.NewStore(), session.WithLogger(server.logger))
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/tools", server.ListTools)
	r.Post("/tools/{tool}", server.RunTool)
	r.Post("/tools/{tool}/upload", server.UploadTool)
	r.Get("/panels", server.GetPanels)
	r.Post("/panels/{panel}", server.ActivatePanel)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Workbench API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

var (
	specOnce sync.Once
	specDoc  *openapi3.T
	specErr  error
)

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		specDoc, specErr = loader.LoadFromData(rawSpec)
		if specErr != nil {
			specErr = fmt.Errorf("failed to load openapi document: %w", specErr)
			return
		}
		if err := specDoc.Validate(context.Background()); err != nil {
			specErr = fmt.Errorf("invalid openapi document: %w", err)
		}
	})
	return specDoc, specErr
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"app":         "workbench-http",
		"version":     s.version,
		"api_version": apiVersion,
		"year":        s.clock.Now().Year(),
	}, s.logger)
}

// ListTools handles the GET /tools request.
func (s *Server) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Runner.Tools(), s.logger)
}

// RunTool handles the POST /tools/{tool} request.
func (s *Server) RunTool(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bindTool(w, r)
	if !ok {
		return
	}

	var body domain.Input
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("RunTool: Invalid request body", "tool", validate.StripControl(string(id)), "error", err)
		return
	}
	if body == nil {
		body = domain.Input{}
	}

	clean, err := validate.SanitizeFields(body, validate.MaxInputSize())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("RunTool: Input rejected", "tool", validate.StripControl(string(id)), "error", err)
		return
	}

	s.run(r.Context(), w, id, clean)
}

// UploadTool handles the POST /tools/{tool}/upload request.
// The multipart "file" part becomes the data, mime and filename fields;
// the remaining form values are passed through as text fields.
func (s *Server) UploadTool(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bindTool(w, r)
	if !ok {
		return
	}
	tool, found := s.Runner.Lookup(id)
	if !found {
		s.run(r.Context(), w, id, domain.Input{})
		return
	}
	if p, ok := tool.Param("data"); !ok || p.Type != domain.ParamBytes {
		http.Error(w, fmt.Sprintf("Tool %s does not accept uploads", id), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "Invalid multipart body", http.StatusBadRequest)
		s.logger.Warn("UploadTool: Invalid multipart body", "tool", validate.StripControl(string(id)), "error", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		s.logger.Warn("UploadTool: Missing file", "tool", validate.StripControl(string(id)), "error", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		s.logger.Warn("UploadTool: Read failed", "tool", validate.StripControl(string(id)), "error", err)
		return
	}

	in := domain.Input{}
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			in[k] = vs[0]
		}
	}
	clean, err := validate.SanitizeFields(in, validate.MaxInputSize())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("UploadTool: Input rejected", "tool", validate.StripControl(string(id)), "error", err)
		return
	}
	clean["data"] = data
	clean["mime"] = header.Header.Get("Content-Type")
	clean["filename"] = header.Filename

	s.run(r.Context(), w, id, clean)
}

func (s *Server) bindTool(w http.ResponseWriter, r *http.Request) (domain.ToolID, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "tool", chi.URLParam(r, "tool"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter tool: %v", err), http.StatusBadRequest)
		return "", false
	}
	return domain.ToolID(id), true
}

func (s *Server) run(ctx context.Context, w http.ResponseWriter, id domain.ToolID, in domain.Input) {
	res := s.Runner.Run(ctx, id, in)
	status := http.StatusOK
	if res.Kind == domain.KindUnknownTool {
		status = http.StatusNotFound
		s.logger.Warn("Unknown tool", "tool", validate.StripControl(string(id)))
	}
	writeJSON(w, status, res, s.logger)
}

// PanelsResponse is the body of the /panels routes.
type PanelsResponse struct {
	SessionID string         `json:"session_id"`
	Active    string         `json:"active"`
	UpdatedAt time.Time      `json:"updated_at"`
	Panels    []panel.Status `json:"panels"`
}

func newPanelsResponse(sessionID string, state *domain.PanelState) PanelsResponse {
	resp := PanelsResponse{SessionID: sessionID}
	if state != nil {
		resp.Active = state.Active
		resp.UpdatedAt = state.UpdatedAt
	}
	for _, id := range panel.Layout() {
		resp.Panels = append(resp.Panels, panel.Status{ID: id, Active: id == resp.Active})
	}
	return resp
}

// sessionID binds the optional session_id query parameter, minting one when absent.
func sessionID(r *http.Request) (string, error) {
	var sid *string
	if err := runtime.BindQueryParameter("form", true, false, "session_id", r.URL.Query(), &sid); err != nil {
		return "", err
	}
	if sid == nil || *sid == "" {
		return uuid.NewString(), nil
	}
	return *sid, nil
}

// GetPanels handles the GET /panels request.
func (s *Server) GetPanels(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter session_id: %v", err), http.StatusBadRequest)
		return
	}

	state, err := s.Sessions.Current(r.Context(), sid)
	if err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetPanels failed", "session_id", sid, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, newPanelsResponse(sid, state), s.logger)
}

// ActivatePanel handles the POST /panels/{panel} request.
func (s *Server) ActivatePanel(w http.ResponseWriter, r *http.Request) {
	var panelID string
	err := runtime.BindStyledParameterWithOptions("simple", "panel", chi.URLParam(r, "panel"), &panelID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter panel: %v", err), http.StatusBadRequest)
		return
	}
	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter session_id: %v", err), http.StatusBadRequest)
		return
	}

	state, err := s.Sessions.Activate(r.Context(), sid, panelID)
	switch {
	case errors.Is(err, domain.ErrUnknownPanel):
		s.logger.Warn("ActivatePanel: Unknown panel", "session_id", sid, "panel", panelID)
		writeJSON(w, http.StatusNotFound, newPanelsResponse(sid, state), s.logger)
	case err != nil:
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ActivatePanel failed", "session_id", sid, "error", err)
	default:
		writeJSON(w, http.StatusOK, newPanelsResponse(sid, state), s.logger)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
