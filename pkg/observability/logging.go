package observability

import (
	"log/slog"

	"github.com/aretw0/functree/pkg/domain"
)

// LoggingHooks returns hooks that write one debug record per node and one record per tree.
// Failed builds are logged at error level.
func LoggingHooks(logger *slog.Logger) domain.GenerationHooks {
	return domain.GenerationHooks{
		OnNode: func(e *domain.NodeEvent) {
			logger.Debug("node_built",
				"preset", e.Preset,
				"kind", e.Kind.String(),
				"name", e.Name,
				"value", e.Value,
				"depth", e.Depth,
			)
		},
		OnTree: func(e *domain.TreeEvent) {
			if e.Err != nil {
				logger.Error("tree_failed", "preset", e.Preset, "error", e.Err)
				return
			}
			logger.Debug("tree_built",
				"preset", e.Preset,
				"nodes", e.Stats.Nodes,
				"depth", e.Stats.Depth,
				"leaves", e.Stats.Leaves,
			)
		},
	}
}
