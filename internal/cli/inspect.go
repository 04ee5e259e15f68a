package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/pipeline"
	"github.com/matzehuels/magnitude/pkg/render"
)

// layoutHeaders are the columns shared by inspect and browse.
var layoutHeaders = []string{"#", "Label", "Value", "Exp", "Position", "Lane", "Category"}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		section string
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset...]",
		Short: "Print the computed layout as a table",
		Long: `Print where every entry lands on its section's axis and which lane it
was assigned, without writing any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			sections, err := c.layoutSections(cmd.Context(), opts, flags.cache)
			if err != nil {
				return err
			}
			if section != "" {
				if sections, err = filterSections(sections, section); err != nil {
					return err
				}
			}
			return writeInspect(cmd.OutOrStdout(), sections)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&section, "section", "s", "", "only show the section with this title")

	return cmd
}

// layoutSections runs the load and layout stages.
func (c *CLI) layoutSections(ctx context.Context, opts pipeline.Options, cf cacheFlags) ([]render.Section, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	datasets, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	sections, err := runner.GenerateLayout(ctx, datasets, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return sections, nil
}

// filterSections keeps the sections whose title matches, ignoring case.
func filterSections(sections []render.Section, title string) ([]render.Section, error) {
	var out []render.Section
	for _, s := range sections {
		if strings.EqualFold(s.Title, title) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no section titled %q", title)
	}
	return out, nil
}

func writeInspect(w io.Writer, sections []render.Section) error {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleTitle.Render(s.Title)+" "+StyleDim.Render(sectionSummary(s)))
		fmt.Fprintln(w, layoutTable(s, -1).Render())
	}
	return nil
}

// sectionSummary describes a section's axis and lane usage.
func sectionSummary(s render.Section) string {
	return fmt.Sprintf("10^%d to 10^%d %s · %s · %s",
		s.Scale.MinExponent, s.Scale.MaxExponent, s.Unit,
		plural(len(s.Entries), "entry", "entries"),
		plural(s.Lanes(), "lane", "lanes"))
}

// layoutRows formats the placed entries of a section in layout order.
func layoutRows(s render.Section) [][]string {
	rows := make([][]string, len(s.Entries))
	for i, e := range s.Entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Label,
			fmt.Sprintf("%g %s", e.Value, e.Unit),
			strconv.Itoa(e.Exponent),
			strconv.FormatFloat(e.Position, 'f', 3, 64),
			strconv.Itoa(e.Lane),
			e.Category,
		}
	}
	return rows
}

// layoutTable renders a section's rows, highlighting row selected (or none when negative).
func layoutTable(s render.Section, selected int) *table.Table {
	return layoutTableRows(layoutRows(s), 0, selected)
}

// layoutTableRows renders rows, where offset is the index of rows[0] in the section.
func layoutTableRows(rows [][]string, offset, selected int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(layoutHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 || col == 4 {
				base = base.Align(lipgloss.Right)
			}
			if offset+row == selected {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 0 || col == 6 {
				return base.Foreground(colorDim)
			}
			return base
		})
}
