package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JJBon/synth-data-service/internal/dispatch"
)

// ToolsHandler exposes the dispatch catalogue over HTTP: a REST-ish pair of
// endpoints plus a JSON-RPC surface matching the tool protocol's
// tools/list and tools/call methods.
type ToolsHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewToolsHandler creates a new tools handler.
func NewToolsHandler(dispatcher *dispatch.Dispatcher) *ToolsHandler {
	return &ToolsHandler{dispatcher: dispatcher}
}

// ListTools handles GET /mcp/tools.
func (h *ToolsHandler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools": h.dispatcher.ListTools(),
	})
}

type callToolRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// CallTool handles POST /mcp/tools/call. The response is always 200 with an
// isError-flagged envelope; the transport never reports internal failures.
func (h *ToolsHandler) CallTool(c *gin.Context) {
	var req callToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.dispatcher.Call(c.Request.Context(), req.Name, req.Arguments))
}

// rpcRequest is a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  callToolRequest `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// RPC handles POST /mcp with JSON-RPC methods tools/list and tools/call.
// Tool-level failures still come back as isError results; only malformed
// requests and unknown methods produce JSON-RPC errors.
func (h *ToolsHandler) RPC(c *gin.Context) {
	var req rpcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: -32700, Message: "Parse error: " + err.Error()},
		})
		return
	}

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "tools/list":
		resp.Result = gin.H{"tools": h.dispatcher.ListTools()}
	case "tools/call":
		resp.Result = h.dispatcher.Call(c.Request.Context(), req.Params.Name, req.Params.Arguments)
	default:
		resp.Error = &rpcError{Code: -32601, Message: "Method not found: " + req.Method}
	}

	c.JSON(http.StatusOK, resp)
}
