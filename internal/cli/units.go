package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/units"
)

// unitsCommand creates the units command.
func (c *CLI) unitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "units [length|time]",
		Short:     "List the supported units",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(units.Length), string(units.Time)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dim units.Dimension
			if len(args) == 1 {
				dim = units.Dimension(args[0])
				if _, ok := units.Base(dim); !ok {
					return errors.New(errors.ErrCodeInvalidInput, "unknown dimension %q (must be length or time)", args[0])
				}
			}
			writeUnits(cmd.OutOrStdout(), dim)
			return nil
		},
	}
}

// unitsRows lists the unit table, restricted to dim unless it is empty.
func unitsRows(dim units.Dimension) [][]string {
	var rows [][]string
	for _, u := range units.All() {
		if dim != "" && u.Dimension != dim {
			continue
		}
		base, _ := units.Base(u.Dimension)
		rows = append(rows, []string{
			u.Symbol,
			u.Name,
			string(u.Dimension),
			strconv.FormatFloat(u.Factor, 'g', -1, 64) + " " + base.Symbol,
			strings.Join(units.Aliases(u.Symbol), ", "),
		})
	}
	return rows
}

func unitsTable(dim units.Dimension) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Symbol", "Name", "Dimension", "Size", "Aliases").
		Rows(unitsRows(dim)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return StyleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 4:
				return base.Foreground(colorDim)
			}
			return base
		})
}

func writeUnits(w io.Writer, dim units.Dimension) {
	fmt.Fprintln(w, unitsTable(dim).Render())
}
