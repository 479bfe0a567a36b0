package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// RunsURI lists the stored run IDs.
	RunsURI = "turing://runs"
	// RunURITemplate addresses one stored run record.
	RunURITemplate = "turing://runs/{id}"

	runURIPrefix    = RunsURI + "/"
	shutdownTimeout = 5 * time.Second
)

// Simulator defines the operations the MCP server exposes.
type Simulator interface {
	Run(ctx context.Context, prog *definition.Program, hooks ...domain.LifecycleHooks) (*domain.RunRecord, error)
	Encode(rules []domain.Rule) (*turing.Encoding, error)
	Runs(ctx context.Context) ([]string, error)
	LoadRun(ctx context.Context, id string) (*domain.RunRecord, error)
}

// RunArgs are the arguments of the run_machine tool.
type RunArgs struct {
	Definition string `json:"definition" jsonschema_description:"Machine definition document"`
	Format     string `json:"format,omitempty" jsonschema_description:"yaml (default) or json"`
	MaxSteps   int    `json:"max_steps,omitempty" jsonschema_description:"Overrides the step budget of the document"`
}

// EncodeArgs are the arguments of the encode_rules tool.
type EncodeArgs struct {
	Definition string `json:"definition" jsonschema_description:"Machine definition document"`
	Format     string `json:"format,omitempty" jsonschema_description:"yaml (default) or json"`
}

// RunList is the result of the list_runs tool.
type RunList struct {
	IDs []string `json:"ids" jsonschema_description:"Stored run IDs, oldest first"`
}

// Server exposes a Simulator as an MCP server.
type Server struct {
	sim       Simulator
	logger    *slog.Logger
	stepLimit int
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStepLimit caps the step budget of every run.
func WithStepLimit(limit int) Option {
	return func(s *Server) {
		s.stepLimit = limit
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sim Simulator, opts ...Option) *Server {
	s := &Server{
		sim:       sim,
		logger:    logging.NewNop(),
		stepLimit: turing.DefaultMaxSteps,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version), server.WithRecovery()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over Server-Sent Events on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL("http://"+net.JoinHostPort(host, port)),
		server.WithHTTPServer(httpServer),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer.Handler = mux

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	s.logger.Info("MCP Server listening (SSE)", "address", addr)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Compile a machine definition document, run it and store the result."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Machine definition document (YAML or JSON)")),
		mcp.WithString("format", mcp.Description("Document format: yaml (default) or json")),
		mcp.WithNumber("max_steps", mcp.Description("Overrides the step budget of the document (optional)")),
		mcp.WithOutputSchema[domain.RunRecord](),
	), mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: encode_rules
	s.mcpServer.AddTool(mcp.NewTool("encode_rules",
		mcp.WithDescription("Encode the rules of a machine definition as a unary/binary bitstring."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Machine definition document (YAML or JSON)")),
		mcp.WithString("format", mcp.Description("Document format: yaml (default) or json")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[turing.Encoding](),
	), mcp.NewStructuredToolHandler(s.handleEncode))

	// TOOL: list_runs
	s.mcpServer.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List stored run IDs, oldest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[RunList](),
	), mcp.NewStructuredToolHandler(s.handleList))
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (*domain.RunRecord, error) {
	prog, err := compile(args.Definition, args.Format)
	if err != nil {
		return nil, err
	}
	if args.MaxSteps > 0 {
		prog.MaxSteps = args.MaxSteps
	}
	if prog.MaxSteps == 0 || prog.MaxSteps > s.stepLimit {
		prog.MaxSteps = s.stepLimit
	}

	record, err := s.sim.Run(ctx, prog)
	if err != nil {
		s.logger.Warn("MCP run_machine failed", "error", err)
		return nil, err
	}
	return record, nil
}

func (s *Server) handleEncode(ctx context.Context, request mcp.CallToolRequest, args EncodeArgs) (*turing.Encoding, error) {
	prog, err := compile(args.Definition, args.Format)
	if err != nil {
		return nil, err
	}
	return s.sim.Encode(prog.Rules)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args struct{}) (RunList, error) {
	ids, err := s.sim.Runs(ctx)
	if err != nil {
		return RunList{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return RunList{IDs: ids}, nil
}

func compile(text, format string) (*definition.Program, error) {
	f := definition.Format(strings.ToLower(format))
	if f == "" {
		f = definition.FormatYAML
	}
	doc, err := definition.Parse([]byte(text), f)
	if err != nil {
		return nil, err
	}
	return doc.Compile()
}

func (s *Server) registerResources() {
	// EXPOSE: turing://runs
	s.mcpServer.AddResource(mcp.NewResource(RunsURI, "Stored runs",
		mcp.WithResourceDescription("IDs of stored runs, oldest first"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sim.Runs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		return jsonContents(RunsURI, ids)
	})

	// EXPOSE: turing://runs/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(RunURITemplate, "Run record",
		mcp.WithTemplateDescription("A stored run with its simulation result"),
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := strings.TrimPrefix(request.Params.URI, runURIPrefix)
		record, err := s.sim.LoadRun(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load run %q: %w", id, err)
		}
		return jsonContents(request.Params.URI, record)
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
