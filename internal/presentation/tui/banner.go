package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the functree banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.Profile
	// Using a subtle gradient-like color scheme (Teal/Cyan)
	lines := []struct {
		text  string
		color string
	}{
		{"   __                 _                 ", "#2dd4bf"},
		{"  / _|_   _ _ __   __| |_ _ __ ___  ___ ", "#22d3ee"},
		{" | |_| | | | '_ \\ / _| __| '__/ _ \\/ _ \\", "#38bdf8"},
		{" |  _| |_| | | | | (_| |_| | |  __/  __/", "#60a5fa"},
		{" |_|  \\__,_|_| |_|\\___|\\__|_|  \\___|\\___|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
