package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

var (
	listCursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	listHighlightStyle = lipgloss.NewStyle().Foreground(colorAmber)
)

// newViewCmd creates the view command, a terminal browser for a graph
// file. It drives the same selection and filter state machine as the
// dashboard, rendered as a node list instead of a canvas.
func newViewCmd() *cobra.Command {
	var neighbors string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a graph file interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := session.ParseNeighborMode(neighbors)
			if err != nil {
				printError("%v", err)
				return err
			}
			g, err := graph.ReadFile(args[0])
			if err != nil {
				printError("loading %s: %v", args[0], err)
				return err
			}
			model := newViewModel(g, mode)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&neighbors, "neighbors", "both", "highlight direction on directed graphs: out, in, both")

	return cmd
}

// filterChoice is one entry in the filter cycle: an attribute/value pair,
// or the zero value meaning "no filter".
type filterChoice struct {
	attr  string
	value graph.Value
}

// viewModel is the bubbletea model for the terminal graph browser. It
// holds a session like the dashboard does and rebuilds the scene after
// every state transition.
type viewModel struct {
	graph   *graph.Graph
	sess    *session.Session
	scene   scene.Scene
	filters []filterChoice // cycled by the f key, index 0 is "off"
	filter  int            // current index into filters
	cursor  int
	height  int
	offset  int
	err     error
}

func newViewModel(g *graph.Graph, mode session.NeighborMode) *viewModel {
	sess := session.New(session.Defaults{NeighborMode: mode})

	filters := []filterChoice{{}}
	for _, attr := range g.CategoricalAttributes() {
		for _, v := range g.AttributeValues(attr) {
			filters = append(filters, filterChoice{attr: attr, value: v})
		}
	}

	colorAttr := ""
	if cats := g.CategoricalAttributes(); len(cats) > 0 {
		colorAttr = cats[0]
	}
	sess.ColorAttr = colorAttr

	m := &viewModel{
		graph:   g,
		sess:    sess,
		filters: filters,
		height:  15,
	}
	m.rebuild()
	return m
}

// rebuild refreshes the scene from the current session state.
func (m *viewModel) rebuild() {
	m.scene = scene.Build(m.graph, m.sess, m.sess.ColorAttr)
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.scene.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			if len(m.scene.Nodes) == 0 {
				return m, nil
			}
			id := m.scene.Nodes[m.cursor].ID
			m.err = m.sess.Selection.Toggle(m.graph, id)
			m.rebuild()
		case "c":
			m.sess.Selection.Clear()
			m.sess.Filter.Clear()
			m.filter = 0
			m.rebuild()
		case "f":
			m.filter = (m.filter + 1) % len(m.filters)
			choice := m.filters[m.filter]
			if choice.attr == "" {
				m.sess.Filter.Clear()
			} else {
				m.sess.Filter.Set(choice.attr, choice.value)
			}
			m.rebuild()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m *viewModel) View() string {
	var b strings.Builder

	kind := "undirected"
	if m.scene.Directed {
		kind = "directed"
	}
	b.WriteString(StyleTitle.Render("graphdeck"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · %d edges · %s",
		len(m.scene.Nodes), len(m.scene.Edges), kind)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  f filter  c clear  q quit"))
	b.WriteString("\n")

	filterLine := "filter: off"
	if choice := m.filters[m.filter]; choice.attr != "" {
		filterLine = fmt.Sprintf("filter: %s = %s", choice.attr, choice.value.Text())
	}
	b.WriteString(listDimStyle.Render(filterLine))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.scene.Nodes) {
		end = len(m.scene.Nodes)
	}

	for i := m.offset; i < end; i++ {
		n := m.scene.Nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := " "
		if m.sess.Selection.Contains(n.ID) {
			marker = iconSuccess
		}

		style := listNormalStyle
		switch {
		case n.Visibility == session.Dimmed:
			style = listDimStyle
		case n.Highlighted:
			style = listHighlightStyle
		}

		line := fmt.Sprintf("%s%s %s", cursor, marker, n.Label)
		if n.ColorCategory != "" {
			line += listDimStyle.Render("  [" + n.ColorCategory + "]")
		}

		if i == m.cursor {
			b.WriteString(listCursorStyle.Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n")
	}

	return b.String()
}
