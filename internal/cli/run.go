package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/pipeline"
	"github.com/matzehuels/stepviz/pkg/step"
)

// runCommand creates the run command, which prints a step log.
func (c *CLI) runCommand() *cobra.Command {
	var (
		in      inputFlags
		asJSON  bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Run an algorithm and print its steps",
		Long: `Run an algorithm and print every step it records.

The output is for inspection only; step logs are always recomputed from the
input and never read back.`,
		Example: `  stepviz run bubble --values "5,3,8,1"
  stepviz run bfs --input graph.yaml --json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Algorithm: args[0], Logger: c.Logger}
			in.apply(&opts)

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			timer := newOpTimer(c.Logger)
			res, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			timer.done(fmt.Sprintf("Ran %s", res.Algorithm.ID))

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeRecordsJSON(out, res.Log)
			case summary:
				writeKindSummary(out, res.Log)
				return nil
			default:
				writeRecordsText(out, res.Log)
				return nil
			}
		},
	}

	in.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print steps as a JSON array")
	cmd.Flags().BoolVar(&summary, "summary", false, "print step counts per kind only")
	cmd.MarkFlagsMutuallyExclusive("json", "summary")

	return cmd
}

func writeRecordsJSON(w io.Writer, l step.Log) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.Records())
}

// writeRecordsText prints one aligned line per step:
//
//	   3  swap       1,2        [3 5 8 1]  Swap 5 and 3
func writeRecordsText(w io.Writer, l step.Log) {
	for _, r := range l.Records() {
		line := fmt.Sprintf("%4d  %-10s %-10s", r.Index, r.Kind, strings.Join(r.Targets, ","))
		if r.Snapshot != nil {
			line += fmt.Sprintf(" %v", r.Snapshot)
		}
		fmt.Fprintf(w, "%s  %s\n", line, r.Message)
	}
}

func writeKindSummary(w io.Writer, l step.Log) {
	counts := make(map[step.Kind]int)
	var order []step.Kind
	for _, k := range l.Kinds() {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	for _, k := range order {
		fmt.Fprintf(w, "%-10s %d\n", k, counts[k])
	}
	fmt.Fprintf(w, "%-10s %d\n", "total", l.Len())
}
