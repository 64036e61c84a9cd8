// Package mcp exposes the plan generators as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/planner"
	"github.com/arturoeanton/health-planner/internal/port"
)

// AuditWriter persists one record per tool call.
type AuditWriter interface {
	WriteAudit(ctx context.Context, entry domain.AuditLog) error
}

// Server implements the Model Context Protocol (MCP) server.
// It lets external AI agents call the plan generators directly.
type Server struct {
	planner *planner.Planner
	audit   AuditWriter
	port    string
	httpSrv *http.Server
}

// NewServer creates a new MCP server. audit may be nil.
func NewServer(p *planner.Planner, audit AuditWriter, port string) *Server {
	return &Server{planner: p, audit: audit, port: port}
}

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
)

// Handler returns the HTTP handler serving /mcp and /mcp/sse.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleRPC)
	mux.HandleFunc("/mcp/sse", s.handleSSE)
	return mux
}

// Start serves MCP on the configured port until Shutdown is called.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("MCP server starting", "port", s.port)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server started by Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, codeParseError, "parse error")
		return
	}

	var result interface{}
	var err error

	switch req.Method {
	case "tools/list":
		result = listTools()
	case "tools/call":
		result, err = s.callTool(r.Context(), req.Params, r.RemoteAddr, r.UserAgent())
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]string{
				"name":    "health-planner",
				"version": "1.0.0",
			},
			"capabilities": map[string]interface{}{
				"tools": map[string]bool{"listChanged": false},
			},
		}
	default:
		writeError(w, req.ID, codeMethodNotFound, "method not found")
		return
	}

	if err != nil {
		writeError(w, req.ID, codeInvalidParams, err.Error())
		return
	}

	writeResult(w, req.ID, result)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: /mcp\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	<-r.Context().Done()
}

var toolDescriptions = map[planner.ToolName]struct {
	description string
	schema      string
}{
	planner.ToolCalculateBMR: {
		"Estimate basal metabolic rate with the Mifflin-St Jeor formula",
		`{"type":"object","properties":{
			"age":{"type":"number","description":"Age in years"},
			"weight":{"type":"number","description":"Weight in kg"},
			"height":{"type":"number","description":"Height in cm"},
			"gender":{"type":"string","description":"male, female or other"}
		},"required":["age","weight","height","gender"],"additionalProperties":false}`,
	},
	planner.ToolGenerateMealPlan: {
		"Generate a daily meal plan from the meal tables",
		`{"type":"object","properties":{
			"calorie_target":{"type":"number","description":"Daily calorie target"},
			"dietary_pref":{"type":"array","items":{"type":"string"},"description":"Dietary preference tags"},
			"days":{"type":"integer","minimum":1,"maximum":31,"description":"Number of days, default 7"}
		},"required":["calorie_target","dietary_pref"],"additionalProperties":false}`,
	},
	planner.ToolGenerateWorkoutPlan: {
		"Generate a repeating workout plan",
		`{"type":"object","properties":{
			"goal":{"type":"string","description":"Fitness goal"},
			"days_per_week":{"type":"integer","minimum":1,"maximum":31,"description":"Training days"},
			"conditions":{"type":"array","items":{"type":"string"},"description":"Existing conditions"}
		},"required":["goal","days_per_week","conditions"],"additionalProperties":false}`,
	},
	planner.ToolFetchRecipe: {
		"Fetch a recipe for a meal",
		`{"type":"object","properties":{
			"meal_name":{"type":"string","description":"Meal name"}
		},"required":["meal_name"],"additionalProperties":false}`,
	},
}

func listTools() map[string]interface{} {
	tools := make([]Tool, 0, len(planner.Tools))
	for _, name := range planner.Tools {
		d := toolDescriptions[name]
		tools = append(tools, Tool{
			Name:        string(name),
			Description: d.description,
			InputSchema: json.RawMessage(d.schema),
		})
	}
	return map[string]interface{}{"tools": tools}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage, ip, userAgent string) (interface{}, error) {
	var req struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	step, err := planner.DecodeStep(req.Name, req.Arguments)
	if err != nil {
		var ue *port.UpstreamError
		if errors.As(err, &ue) {
			return nil, errors.New(ue.Detail)
		}
		return nil, err
	}

	out, err := json.Marshal(s.planner.Run(step))
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	s.record(ctx, req.Name, ip, userAgent)

	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(out)},
		},
	}, nil
}

func (s *Server) record(ctx context.Context, tool, ip, userAgent string) {
	if s.audit == nil {
		return
	}
	err := s.audit.WriteAudit(ctx, domain.AuditLog{
		UserID:     "mcp",
		Action:     domain.AuditActionMCPCall,
		Resource:   "tool",
		ResourceID: tool,
		Details:    "{}",
		IP:         ip,
		UserAgent:  userAgent,
	})
	if err != nil {
		slog.Error("failed to write audit log", "error", err)
	}
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
