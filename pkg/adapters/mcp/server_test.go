package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/internal/logging"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(functree.NewService(nil), logging.NewNop())
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"preset": "binaryOnly",
		"seed":   "99",
	})
	require.NoError(t, err)
	assert.Equal(t, "binaryOnly", resp.Preset)
	assert.Equal(t, uint64(99), resp.Seed)
	assert.Equal(t, "construct", resp.Format)
	assert.Equal(t, resp.Statement, resp.Text)
	assert.Equal(t, domain.FixtureID(resp.Statement), resp.ID)
	assert.True(t, strings.HasPrefix(resp.Statement, "new FunctionTree.Add("))

	again, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"preset": "binaryOnly",
		"seed":   "99",
		"format": "infix",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.Statement, again.Statement)
	assert.NotContains(t, again.Text, "FunctionTree")
}

func TestHandleGenerate_Defaults(t *testing.T) {
	resp, err := newTestServer().handleGenerate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "general", resp.Preset)
	assert.NotZero(t, resp.Stats.Nodes)
}

func TestHandleGenerate_Errors(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		want error
	}{
		{"unknown preset", map[string]interface{}{"preset": "nope"}, domain.ErrUnknownPreset},
		{"unknown format", map[string]interface{}{"format": "latex"}, functree.ErrUnknownFormat},
		{"bad seed", map[string]interface{}{"seed": "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, tt.args)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func handle(t *testing.T, s *Server, message string) string {
	t.Helper()
	resp := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(message))
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func TestProtocol_ToolsAndResources(t *testing.T) {
	s := newTestServer()

	tools := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	assert.Contains(t, tools, "generate_expression")
	assert.Contains(t, tools, "list_presets")

	presets := handle(t, s, `{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"functree://presets"}}`)
	assert.Contains(t, presets, "binaryOnly")
	assert.Contains(t, presets, "binary_above")
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServeSSE_StopsWithOpenStream(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- newTestServer().ServeSSE(ctx, port) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/sse", port))
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: endpoint\n", line)

	start := time.Now()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Less(t, time.Since(start), ShutdownTimeout, "open SSE stream must not hold shutdown")
	case <-time.After(ShutdownTimeout + 3*time.Second):
		t.Fatal("ServeSSE did not return after cancel")
	}
}
