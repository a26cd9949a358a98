package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/pkg/query"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the tree interactively",
		Long: `Explore the tree interactively.

Keys:
  ↑/k ↓/j      move
  enter/→/l    open the selected category
  ←/h/bksp     go to the parent
  q/esc        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			m, err := newBrowseModel(t, start)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&start, "from", "", "start at this label instead of the root")
	_ = cmd.RegisterFlagCompletionFunc("from", c.completeOneLabel)
	return cmd
}

// Browser styles
var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	browsePathStyle     = lipgloss.NewStyle().Foreground(colorOrange)
)

// =============================================================================
// browseModel - Interactive tree navigation
// =============================================================================

// browseModel lists the children of one node and lets the user walk the tree.
type browseModel struct {
	tree    *tree.Tree
	node    string         // node whose children are listed
	cursor  int            // index into the children of node
	offset  int            // first visible child
	height  int            // visible rows
	cursors map[string]int // cursor to restore when returning to a node
	sizes   map[string]int // descendant counts
}

func newBrowseModel(t *tree.Tree, start string) (browseModel, error) {
	if start == "" {
		start = t.Root()
	}
	if _, err := query.Trace(t, start); err != nil {
		return browseModel{}, err
	}

	stats := query.Stats(t)
	sizes := make(map[string]int, len(stats))
	for n, s := range stats {
		sizes[n] = s.Descendants
	}
	return browseModel{
		tree:    t,
		node:    start,
		height:  15,
		cursors: make(map[string]int),
		sizes:   sizes,
	}, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)
		m.scroll()
	case tea.KeyMsg:
		children := m.tree.Children(m.node)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(children)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if len(children) == 0 {
				break
			}
			next := children[m.cursor]
			if m.tree.IsLeaf(next) {
				break
			}
			m.cursors[m.node] = m.cursor
			m.node = next
			m.cursor = m.cursors[next]
			m.offset = 0
		case "left", "h", "backspace":
			parent, ok := m.tree.Parent(m.node)
			if !ok {
				break
			}
			m.cursors[m.node] = m.cursor
			// Land on the node we came from.
			m.cursor = 0
			for i, c := range m.tree.Children(parent) {
				if c == m.node {
					m.cursor = i
				}
			}
			m.node = parent
			m.offset = 0
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// selected returns the highlighted child, or "" for a leaf node.
func (m browseModel) selected() string {
	children := m.tree.Children(m.node)
	if len(children) == 0 {
		return ""
	}
	return children[m.cursor]
}

func (m browseModel) View() string {
	var b strings.Builder

	path, _ := query.Trace(m.tree, m.node)
	b.WriteString(StyleTitle.Render("foodtree"))
	b.WriteString("  ")
	b.WriteString(browsePathStyle.Render(strings.Join(path, " "+iconArrow+" ")))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("depth %d · %d descendants", len(path)-1, m.sizes[m.node])))
	b.WriteString("\n\n")

	children := m.tree.Children(m.node)
	if len(children) == 0 {
		b.WriteString(browseDimStyle.Render("  (no subcategories)"))
		b.WriteString("\n")
	}
	end := min(m.offset+m.height, len(children))
	for i := m.offset; i < end; i++ {
		c := children[i]
		marker := "  "
		style := browseNormalStyle
		if i == m.cursor {
			marker = iconInfo + " "
			style = browseSelectedStyle
		}
		suffix := ""
		if n := m.sizes[c]; n > 0 {
			suffix = browseDimStyle.Render(fmt.Sprintf("  %d", n))
		}
		b.WriteString(marker + style.Render(c) + suffix + "\n")
	}
	if len(children) > m.height {
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  %d-%d of %d", m.offset+1, end, len(children))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ move · enter open · ← back · q quit"))
	return b.String()
}
