package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/pkg/observability"
)

// RunOptions contains the configuration of the default command.
type RunOptions struct {
	Seed   uint64
	Seeded bool
	Format string
}

// Run generates one expression with the env's preset and writes it to w.
// The construct format writes the statement followed by a newline and nothing else.
func Run(env *Env, w io.Writer, opts RunOptions) error {
	format, err := functree.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	genOpts := env.generatorOptions(observability.LoggingHooks(env.Logger))
	genOpts = append(genOpts, functree.WithPreset(env.Config.Preset))
	if opts.Seeded {
		genOpts = append(genOpts, functree.WithSeed(opts.Seed))
	}

	g, err := functree.New(genOpts...)
	if err != nil {
		return err
	}
	if seed, ok := g.Seed(); ok {
		env.Logger.Debug("generator ready", "seed", seed)
	}

	if format == functree.FormatConstruct {
		return g.Emit(w)
	}

	fx, err := g.Generate()
	if err != nil {
		return err
	}
	text, err := functree.Render(fx, format)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return nil
}
