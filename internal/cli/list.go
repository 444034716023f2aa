package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/input"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			algs := c.Registry.List()
			if family != "" {
				algs = c.Registry.ByFamily(input.Family(family))
				if len(algs) == 0 {
					return fmt.Errorf("unknown family %q", family)
				}
			}
			fmt.Println(algorithmTable(algs))
			printNewline()
			printNextStep("Describe one", appName+" info <algorithm>")
			printNextStep("Watch it run", appName+" play <algorithm>")
			return nil
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", "", "only list one family (array, graph, tree, grid)")
	cmd.RegisterFlagCompletionFunc("family", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(input.Families))
		for i, f := range input.Families {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// algorithmTable renders algs as a table grouped by family in registry order.
func algorithmTable(algs []algorithm.Algorithm) string {
	var rows [][]string
	for _, f := range input.Families {
		for _, a := range algs {
			if a.Family == f {
				rows = append(rows, []string{string(a.Family), a.ID, a.Name, a.Summary})
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Family", "ID", "Name", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Foreground(colorCyan).Bold(true)
			case col == 3:
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}

// completeAlgorithms offers algorithm ids for the first positional argument.
func (c *CLI) completeAlgorithms(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, a := range c.Registry.List() {
		out = append(out, a.ID+"\t"+a.Summary)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
