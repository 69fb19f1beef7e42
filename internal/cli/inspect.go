package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/internal/presentation/graph"
	"github.com/aretw0/functree/internal/presentation/tui"
	"github.com/aretw0/functree/pkg/grammar"
	"gopkg.in/yaml.v3"
)

// InspectOptions contains the configuration of the inspect command.
type InspectOptions struct {
	Seed   uint64
	Seeded bool
	// Style is a glamour style name; empty detects the terminal.
	Style    string
	NoBanner bool
}

// Inspect generates one expression and writes a rendered report about it.
// Nodes built at the preset's depth cap are highlighted in the tree chart.
func Inspect(env *Env, w io.Writer, opts InspectOptions) error {
	var seed *uint64
	if opts.Seeded {
		seed = &opts.Seed
	}
	fx, err := env.Service().Generate(env.Config.Preset, seed)
	if err != nil {
		return err
	}
	policy, err := env.Registry.Lookup(env.Config.Preset)
	if err != nil {
		return err
	}

	render, err := tui.NewRenderer(opts.Style)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(tui.Report(fx, &graph.Overlay{CapDepth: policy.MaxDepth}))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if !opts.NoBanner {
		tui.PrintBanner(w, functree.Version)
	}
	_, err = io.WriteString(w, out)
	return err
}

// ListPresets writes every registered policy as YAML.
func ListPresets(env *Env, w io.Writer) error {
	doc := struct {
		Presets []grammar.Policy `yaml:"presets"`
	}{Presets: env.Registry.Policies()}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return enc.Close()
}
