package cli

import (
	"context"
	"fmt"

	httpAdapter "github.com/aretw0/functree/pkg/adapters/http"
	"github.com/aretw0/functree/pkg/adapters/mcp"
	"github.com/aretw0/functree/pkg/observability"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeOptions contains the configuration of the serve command.
type ServeOptions struct {
	// Port overrides server.port when non-zero.
	Port  int
	Store string
}

// Serve runs the HTTP API with metrics until ctx is canceled.
func Serve(ctx context.Context, env *Env, opts ServeOptions) error {
	port := env.Config.Server.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	store, closeStore, err := OpenStore(ctx, opts.Store, env.Config)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics()
	svc := env.Service(metrics.Hooks(), observability.LoggingHooks(env.Logger))

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithLogger(env.Logger),
	}
	if store != nil {
		handlerOpts = append(handlerOpts, httpAdapter.WithStore(store))
		env.Logger.Info("fixture store enabled", "store", opts.Store)
	}

	handler := httpAdapter.NewHandler(svc, handlerOpts...)
	return httpAdapter.ListenAndServe(ctx, fmt.Sprintf(":%d", port), handler, env.Logger)
}

// ServeMCP runs the MCP server on the given transport.
// Stdio serves until the input closes; SSE serves until ctx is canceled.
func ServeMCP(ctx context.Context, env *Env, transport string, port int) error {
	srv := mcp.NewServer(env.Service(observability.LoggingHooks(env.Logger)), env.Logger)

	switch transport {
	case TransportStdio:
		env.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		if port == 0 {
			port = env.Config.Server.MCPPort
		}
		return srv.ServeSSE(ctx, port)
	}
	return fmt.Errorf("unknown transport %q (use %s or %s)", transport, TransportStdio, TransportSSE)
}
