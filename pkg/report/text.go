package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).MarginTop(1)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleArrow   = lipgloss.NewStyle().Foreground(colorDim)
)

// WriteText renders r as styled terminal text. Colors are dropped
// automatically when w is not a terminal.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render(r.Root))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("%d nodes · %d edges · run %s", r.Nodes, r.Edges, r.ID)))
	b.WriteString("\n")

	if len(r.Traces) > 0 {
		b.WriteString(styleSection.Render("Paths"))
		b.WriteString("\n")
		for _, tr := range r.Traces {
			if tr.Error != "" {
				fmt.Fprintf(&b, "  %s %s\n", tr.Target, styleError.Render("✗ "+tr.Error))
				continue
			}
			fmt.Fprintf(&b, "  %s\n", strings.Join(tr.Path, styleArrow.Render(" → ")))
		}
	}

	b.WriteString(styleSection.Render("Maximum depth below each category"))
	b.WriteString("\n")
	rows := make([][]string, len(r.CategoryDepths))
	for i, cd := range r.CategoryDepths {
		rows[i] = []string{cd.Category, strconv.Itoa(cd.MaxDepth)}
	}
	b.WriteString(newTable([]string{"Category", "Max depth"}, rows))
	b.WriteString("\n")

	b.WriteString(styleSection.Render("Nodes per level"))
	b.WriteString("\n")
	rows = make([][]string, len(r.Levels))
	for i, l := range r.Levels {
		rows[i] = []string{strconv.Itoa(l.Depth), strconv.Itoa(l.Count)}
	}
	b.WriteString(newTable([]string{"Level", "Nodes"}, rows))
	b.WriteString("\n")

	b.WriteString(styleSection.Render(fmt.Sprintf("Top %d categories by descendants", len(r.Top))))
	b.WriteString("\n")
	rows = make([][]string, len(r.Top))
	for i, s := range r.Top {
		rows[i] = []string{strconv.Itoa(i + 1), s.Category, strconv.Itoa(s.Descendants)}
	}
	b.WriteString(newTable([]string{"#", "Category", "Descendants"}, rows))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		}).
		Render()
}
