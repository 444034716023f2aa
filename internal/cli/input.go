package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/pipeline"
)

// inputFlags are the input sources shared by run, render and play. At most
// one should be set; with none, the family's sample input is used.
type inputFlags struct {
	values string
	data   string
	path   string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.values, "values", "", `array values, e.g. "5,3,8,1" (array algorithms only)`)
	cmd.Flags().StringVar(&f.data, "data", "", "inline JSON input")
	cmd.Flags().StringVarP(&f.path, "input", "i", "", "input file (.json, .yaml, .toml, .txt)")
	cmd.MarkFlagsMutuallyExclusive("values", "data", "input")
}

func (f *inputFlags) apply(opts *pipeline.Options) {
	opts.Values = f.values
	opts.Inline = f.data
	opts.InputPath = f.path
}
