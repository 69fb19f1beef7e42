package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/functree"
)

// CorpusOptions contains the configuration of the corpus command.
type CorpusOptions struct {
	Count  int
	Seed   uint64
	Seeded bool
	Store  string
	// Out is a file to write the statements to instead of w.
	Out string
}

// RunCorpus generates a deduplicated corpus in the selected store and writes
// the unique statements of this run, one per line.
func RunCorpus(ctx context.Context, env *Env, w io.Writer, opts CorpusOptions) (functree.CorpusReport, error) {
	if opts.Count <= 0 {
		return functree.CorpusReport{}, fmt.Errorf("--count must be positive, got %d", opts.Count)
	}
	if opts.Store == StoreNone {
		opts.Store = StoreMemory
	}
	if !opts.Seeded {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	store, closeStore, err := OpenStore(ctx, opts.Store, env.Config)
	if err != nil {
		return functree.CorpusReport{}, err
	}
	defer closeStore()

	report, err := env.Service().Corpus(ctx, store, env.Config.Preset, opts.Count, opts.Seed, env.Logger)
	if err != nil {
		return report, err
	}

	out := w
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return report, fmt.Errorf("failed to create %s: %w", opts.Out, err)
		}
		defer f.Close()
		out = f
	}

	for _, id := range report.IDs {
		fx, err := store.Load(ctx, id)
		if err != nil {
			return report, fmt.Errorf("failed to read back fixture %s: %w", id, err)
		}
		if _, err := fmt.Fprintln(out, fx.Statement); err != nil {
			return report, fmt.Errorf("failed to write corpus: %w", err)
		}
	}
	return report, nil
}
