package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// PresetsURI is the resource listing every available preset.
const PresetsURI = "functree://presets"

// ShutdownTimeout bounds the graceful shutdown of the SSE transport.
const ShutdownTimeout = 5 * time.Second

// ExpressionResponse is the structured result of the generate_expression tool.
type ExpressionResponse struct {
	ID        string       `json:"id" jsonschema_description:"Content-derived fixture ID"`
	Preset    string       `json:"preset" jsonschema_description:"Preset the expression was generated with"`
	Seed      uint64       `json:"seed" jsonschema_description:"Seed that reproduces the expression"`
	Format    string       `json:"format" jsonschema_description:"Rendering of the text field"`
	Text      string       `json:"text" jsonschema_description:"The rendered expression"`
	Statement string       `json:"statement" jsonschema_description:"FunctionTree constructor statement"`
	Stats     domain.Stats `json:"stats" jsonschema_description:"Node counts and depth of the tree"`
}

// Generator defines the interface required by the MCP server.
type Generator interface {
	Generate(preset string, seed *uint64) (domain.Fixture, error)
	Presets() []grammar.Policy
}

// Server wraps a Generator and exposes it as an MCP Server.
type Server struct {
	generator Generator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator, logger *slog.Logger) *Server {
	s := &Server{
		generator: gen,
		logger:    logger,
		mcpServer: server.NewMCPServer("functree-mcp", strings.TrimSpace(functree.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	httpServer := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(baseURL),
		server.WithHTTPServer(httpServer),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer.Handler = mux

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		// Closing the SSE sessions releases their handlers so Shutdown can drain.
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			_ = httpServer.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
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

func (s *Server) registerTools() {
	// TOOL: generate_expression
	generateTool := mcp.NewTool("generate_expression",
		mcp.WithDescription("Generate a random FunctionTree expression. Pass a seed to reproduce a previous result."),
		mcp.WithString("preset", mcp.Description("Grammar preset (default: general)")),
		mcp.WithString("seed", mcp.Description("Unsigned integer seed (optional)")),
		mcp.WithString("format", mcp.Description("construct, infix, tex, json or mermaid (default: construct)")),
		mcp.WithOutputSchema[ExpressionResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: list_presets
	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the grammar presets and their production thresholds."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.generator.Presets())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpressionResponse, error) {
	preset, _ := args["preset"].(string)
	if preset == "" {
		preset = grammar.PresetGeneral
	}

	var seed *uint64
	if raw, ok := args["seed"].(string); ok && raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return ExpressionResponse{}, fmt.Errorf("invalid seed %q: %w", raw, err)
		}
		seed = &v
	}

	formatName, _ := args["format"].(string)
	format, err := functree.ParseFormat(formatName)
	if err != nil {
		return ExpressionResponse{}, err
	}

	fx, err := s.generator.Generate(preset, seed)
	if err != nil {
		s.logger.Warn("MCP generate failed", "preset", preset, "error", err)
		return ExpressionResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	text, err := functree.Render(fx, format)
	if err != nil {
		return ExpressionResponse{}, fmt.Errorf("render failed: %w", err)
	}

	return ExpressionResponse{
		ID:        fx.ID,
		Preset:    fx.Preset,
		Seed:      fx.Seed,
		Format:    string(format),
		Text:      text,
		Statement: fx.Statement,
		Stats:     fx.Stats,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: functree://presets
	s.mcpServer.AddResource(mcp.NewResource(PresetsURI, "Grammar Presets",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.generator.Presets())
		if err != nil {
			return nil, fmt.Errorf("failed to encode presets: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PresetsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
