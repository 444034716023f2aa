package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/input"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		sample bool
		width  int
	)

	cmd := &cobra.Command{
		Use:               "info <algorithm>",
		Short:             "Describe an algorithm",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := c.Registry.Get(args[0])
			if err != nil {
				return err
			}
			if sample {
				out, err := sampleJSON(alg.Family)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}

			printKeyValue("ID", alg.ID)
			printKeyValue("Family", string(alg.Family))
			printKeyValue("Summary", alg.Summary)
			fmt.Print(renderMarkdown(alg, width))
			printNextStep("Sample input", fmt.Sprintf("%s info %s --sample", appName, alg.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "print the sample input as JSON instead")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap width")

	return cmd
}

// renderMarkdown renders the algorithm description for the terminal. When
// glamour cannot render, the raw markdown is returned.
func renderMarkdown(alg algorithm.Algorithm, width int) string {
	body := alg.Description
	if strings.TrimSpace(body) == "" {
		body = "# " + alg.Name + "\n\n" + alg.Summary + "\n"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}

// sampleJSON returns the family's sample input, indented.
func sampleJSON(f input.Family) (string, error) {
	data, err := json.MarshalIndent(input.Sample(f), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
