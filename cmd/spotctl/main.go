// Command spotctl renders, classifies, and inspects SPOT Light reports
// without the server: useful for checking a form definition or a render
// configuration offline.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type globals struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "spotctl",
		Short: "SPOT Light report tooling",
		Long: `spotctl works with SPOT Light reports on the local machine.

It reads the [render] and [report] sections of the service configuration,
so output matches what the server publishes.

Examples:
  spotctl render --input march.yaml --output march.pdf
  spotctl classify --position 6 progress.txt
  spotctl inspect "[DS] Tim Data Science_Maret 2025.pdf"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default config.toml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newRenderCmd(g),
		newClassifyCmd(g),
		newInspectCmd(),
	)
	return root
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
