package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danilucaci/stylemap"
	"github.com/danilucaci/stylemap/internal/validator"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Resolver defines the interface required by the MCP server to look up
// and inspect token sheets.
type Resolver interface {
	GetFrom(ctx context.Context, sheet, path string) (any, error)
	Sheets() []string
	Sheet(name string) (tokens.Mapping, error)
	Flatten(ctx context.Context, sheet string) (map[string]any, error)
	CheckAliases(sheet string) []error
}

// TokenResponse is the structured result of the get_token tool.
type TokenResponse struct {
	Sheet string `json:"sheet,omitempty" jsonschema_description:"The sheet the value was resolved against"`
	Path  string `json:"path" jsonschema_description:"The dotted token path"`
	Value any    `json:"value" jsonschema_description:"The resolved value, aliases expanded"`
}

// LintResponse is the structured result of the lint_sheet tool.
type LintResponse struct {
	Sheet  string   `json:"sheet" jsonschema_description:"The linted sheet"`
	Errors []string `json:"errors" jsonschema_description:"Broken or cyclic alias references"`
}

// ValidateResponse is the structured result of the validate_tokens tool.
type ValidateResponse struct {
	Valid  bool   `json:"valid" jsonschema_description:"True when every sheet passed alias and $types validation"`
	Detail string `json:"detail,omitempty" jsonschema_description:"Aggregated validation errors when valid is false"`
}

// Server wraps a Resolver and exposes it as an MCP Server.
type Server struct {
	resolver  Resolver
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(res Resolver) *Server {
	s := &Server{
		resolver:  res,
		mcpServer: server.NewMCPServer("stylemap-mcp", strings.TrimSpace(stylemap.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
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
	// TOOL: get_token
	getTool := mcp.NewTool("get_token",
		mcp.WithDescription("Resolve a design token by its dotted path, expanding {alias} references."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Dotted token path, e.g. palette.primary.500")),
		mcp.WithString("sheet", mcp.Description("Sheet name (defaults to the default sheet)")),
		mcp.WithOutputSchema[TokenResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetToken))

	// TOOL: list_sheets
	s.mcpServer.AddTool(mcp.NewTool("list_sheets",
		mcp.WithDescription("List the names of all loaded token sheets."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.resolver.Sheets())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: flatten_sheet
	flattenTool := mcp.NewTool("flatten_sheet",
		mcp.WithDescription("Return every token of a sheet keyed by its dotted path, with aliases resolved."),
		mcp.WithString("sheet", mcp.Description("Sheet name (defaults to the default sheet)")),
	)
	s.mcpServer.AddTool(flattenTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sheet := request.GetString("sheet", "")
		flat, err := s.resolver.Flatten(ctx, sheet)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("flatten failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(flat)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: lint_sheet
	lintTool := mcp.NewTool("lint_sheet",
		mcp.WithDescription("Report broken or cyclic {alias} references in a sheet."),
		mcp.WithString("sheet", mcp.Description("Sheet name (defaults to the default sheet)")),
		mcp.WithOutputSchema[LintResponse](),
	)
	s.mcpServer.AddTool(lintTool, mcp.NewStructuredToolHandler(s.handleLintSheet))

	// TOOL: validate_tokens
	validateTool := mcp.NewTool("validate_tokens",
		mcp.WithDescription("Validate every loaded sheet: alias references plus any declared $types constraints."),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateTokens))
}

// Handler methods for structured tools

func (s *Server) handleGetToken(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TokenResponse, error) {
	path, _ := args["path"].(string)
	sheet, _ := args["sheet"].(string)

	if path == "" {
		return TokenResponse{}, fmt.Errorf("path is required")
	}

	value, err := s.resolver.GetFrom(ctx, sheet, path)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("resolve failed: %w", err)
	}

	return TokenResponse{
		Sheet: sheet,
		Path:  path,
		Value: value,
	}, nil
}

func (s *Server) handleLintSheet(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LintResponse, error) {
	sheet, _ := args["sheet"].(string)

	if _, err := s.resolver.Sheet(sheet); err != nil {
		return LintResponse{}, fmt.Errorf("unknown sheet: %w", err)
	}

	errs := s.resolver.CheckAliases(sheet)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return LintResponse{Sheet: sheet, Errors: msgs}, nil
}

func (s *Server) handleValidateTokens(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	if err := validator.ValidateSheets(s.resolver); err != nil {
		return ValidateResponse{Valid: false, Detail: err.Error()}, nil
	}
	return ValidateResponse{Valid: true}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: stylemap://sheets
	s.mcpServer.AddResource(mcp.NewResource("stylemap://sheets", "Loaded Token Sheets",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		docs := make(map[string]tokens.Mapping)
		for _, name := range s.resolver.Sheets() {
			doc, err := s.resolver.Sheet(name)
			if err != nil {
				return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
			}
			docs[name] = doc
		}
		jsonBytes, _ := json.Marshal(docs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "stylemap://sheets",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
