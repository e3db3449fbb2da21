package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/payload-distance/internal/fixture"
	"github.com/gcbaptista/payload-distance/internal/scoring"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var (
		fixturePath string
		strategy    string
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Evaluate a scoring script against a YAML fixture",
		Long: `Evaluate a payload distance script against the documents of a YAML fixture,
without building an index.

Examples:
  payload-distance score --fixture shoes.yaml                        # Table output
  payload-distance score --fixture shoes.yaml --strategy difference  # Strategy behind payload_distance_score
  payload-distance score --fixture shoes.yaml -o json                # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFmt != outputTable && outputFmt != outputJSON {
				return fmt.Errorf("unsupported output format '%s' (table, json)", outputFmt)
			}

			defaultStrategy, err := resolveStrategy(opts, strategy)
			if err != nil {
				return err
			}

			file, err := fixture.Load(fixturePath)
			if err != nil {
				return err
			}
			applied, results, err := file.Evaluate(defaultStrategy)
			if err != nil {
				return err
			}

			if outputFmt == outputJSON {
				return writeJSON(cmd.OutOrStdout(), applied, results)
			}
			return writeTable(cmd.OutOrStdout(), applied, results)
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "path to the YAML fixture")
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy behind payload_distance_score (default: $PAYLOAD_DISTANCE_STRATEGY)")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", outputTable, "output format (table, json)")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

// resolveStrategy prefers the --strategy flag and falls back to the configured deployment strategy.
func resolveStrategy(opts *rootOptions, flag string) (scoring.Strategy, error) {
	if flag != "" {
		return scoring.ParseStrategy(flag)
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.DefaultStrategy(), nil
}

func writeJSON(w io.Writer, strategy scoring.Strategy, results []fixture.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Strategy string           `json:"strategy"`
		Results  []fixture.Result `json:"results"`
	}{strategy.String(), results})
}

func writeTable(w io.Writer, strategy scoring.Strategy, results []fixture.Result) error {
	fmt.Fprintf(w, "Strategy: %s\n\n", strategy)
	if len(results) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tDOCUMENT\tSCORE\tBASE\tFALLBACK")
	fmt.Fprintln(tw, "----\t--------\t-----\t----\t--------")
	for i, r := range results {
		fallback := ""
		if r.Fallback {
			fallback = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%s\n", i+1, r.ID, r.Score, r.BaseScore, fallback)
	}
	return tw.Flush()
}
