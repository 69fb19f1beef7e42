package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/functree/pkg/builder"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/observability"
	"github.com/aretw0/functree/pkg/random"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()

	b := builder.New(random.NewSequence(80, 0, 30, 42, 30, 7), builder.WithHooks(m.Hooks()))
	_, err := b.Build(grammar.General(), 0)
	require.NoError(t, err)

	_, err = b.Build(grammar.General(), 0)
	require.Error(t, err, "the sequence is exhausted")

	expected := `
# HELP functree_trees_total Total number of tree builds, by result
# TYPE functree_trees_total counter
functree_trees_total{preset="general",result="error"} 1
functree_trees_total{preset="general",result="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "functree_trees_total"))

	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP functree_nodes_total Total number of nodes built, by kind
# TYPE functree_nodes_total counter
functree_nodes_total{kind="binary",preset="general"} 1
functree_nodes_total{kind="const",preset="general"} 2
`), "functree_nodes_total"))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnTree(&domain.TreeEvent{Preset: "binaryOnly", Stats: domain.Stats{Nodes: 3, Depth: 1}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `functree_tree_nodes_count{preset="binaryOnly"} 1`)
	assert.Contains(t, body, `functree_tree_depth_sum{preset="binaryOnly"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LoggingHooks(logger)

	hooks.OnNode(&domain.NodeEvent{Preset: "general", Kind: domain.KindVariable, Name: "x", Depth: 2})
	hooks.OnTree(&domain.TreeEvent{Preset: "general", Stats: domain.Stats{Nodes: 5}})
	hooks.OnTree(&domain.TreeEvent{Preset: "general", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "msg=node_built")
	assert.Contains(t, out, "kind=variable")
	assert.Contains(t, out, "msg=tree_built")
	assert.Contains(t, out, "nodes=5")
	assert.Contains(t, out, "level=ERROR msg=tree_failed")
}
