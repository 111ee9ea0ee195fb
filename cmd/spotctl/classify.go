package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/spotlight/internal/config"
	"github.com/JaimeStill/spotlight/pkg/outline"
)

func newClassifyCmd(g *globals) *cobra.Command {
	var (
		position int
		scalar   bool
	)

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the blocks a field answer classifies into",
		Long: `Classify reads one answer from file (or stdin) and prints its blocks as JSON.
--position is the zero-based field ordinal; it decides paragraph alignment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadRendering(g.configPath)
			if err != nil {
				return err
			}

			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			c := cfg.Report.Classifier()
			var blocks []outline.Block
			if scalar {
				blocks = c.ClassifyScalar(string(data), position)
			} else {
				blocks = c.Classify(string(data), position)
			}
			if blocks == nil {
				blocks = []outline.Block{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		},
	}

	cmd.Flags().IntVarP(&position, "position", "p", 0, "zero-based field position")
	cmd.Flags().BoolVar(&scalar, "scalar", false, "treat the input as a scalar value")

	return cmd
}
