package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/physics"
	"github.com/san-kum/unitlab/internal/store"
	"github.com/san-kum/unitlab/internal/unit"
	"github.com/san-kum/unitlab/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const listHeight = 12

type state int

const (
	stateFrom state = iota
	stateTo
	stateValue
)

type model struct {
	ctx     context.Context
	state   state
	cursor  int
	symbols []string
	targets []string
	from    string
	to      string
	input   string

	models   []string
	modelIdx int

	width  int
	height int
}

// newConverter starts on the unit picker, or directly on the value editor
// when both units are known and commensurable under the model in ctx.
func newConverter(ctx context.Context, from, to string) *model {
	m := &model{
		ctx:     ctx,
		state:   stateFrom,
		symbols: unit.Symbols(),
		input:   "1",
		models:  physics.Names(),
		width:   80,
		height:  24,
	}
	active := physics.Active(ctx).Name()
	for i, name := range m.models {
		if name == active {
			m.modelIdx = i
		}
	}

	if _, ok := unit.Lookup(from); ok {
		m.from = from
		m.targets = m.commensurable(from)
		m.state = stateTo
		for i, s := range m.targets {
			if s == to {
				m.to = to
				m.cursor = i
				m.state = stateValue
			}
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateFrom:
		return m.pickKey(msg, m.symbols)
	case stateTo:
		return m.pickKey(msg, m.targets)
	case stateValue:
		return m.valueKey(msg)
	}
	return m, nil
}

func (m model) pickKey(msg tea.KeyMsg, list []string) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "esc":
		if m.state == stateTo {
			m.state = stateFrom
			m.cursor = max(indexOf(m.symbols, m.from), 0)
		}
	case "enter", " ":
		if len(list) == 0 {
			return m, nil
		}
		if m.state == stateFrom {
			m.from = list[m.cursor]
			m.targets = m.commensurable(m.from)
			m.cursor = 0
			m.state = stateTo
		} else {
			m.to = list[m.cursor]
			m.state = stateValue
		}
	}
	return m, nil
}

func (m model) valueKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = stateTo
		m.cursor = max(indexOf(m.targets, m.to), 0)
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "s":
		m.from, m.to = m.to, m.from
		m.targets = m.commensurable(m.from)
	case "m":
		if len(m.models) > 0 {
			m.modelIdx = (m.modelIdx + 1) % len(m.models)
			if indexOf(m.commensurable(m.from), m.to) < 0 {
				m.targets = m.commensurable(m.from)
				m.cursor = 0
				m.state = stateTo
			}
		}
	case "t":
		viz.SetTheme(viz.NextTheme(viz.CurrentTheme).Name)
	default:
		if len(key) == 1 && strings.Contains("0123456789.-+e", key) {
			m.input += key
		}
	}
	return m, nil
}

// scope is the context carrying the model picked in the UI.
func (m model) scope() context.Context {
	if len(m.models) == 0 {
		return m.ctx
	}
	pm, ok := physics.Lookup(m.models[m.modelIdx])
	if !ok {
		return m.ctx
	}
	return physics.Select(m.ctx, pm)
}

func (m model) commensurable(from string) []string {
	fu, ok := unit.Lookup(from)
	if !ok {
		return nil
	}
	ctx := m.scope()
	var out []string
	for _, s := range m.symbols {
		u, _ := unit.Lookup(s)
		if unit.Commensurable(ctx, fu, u) {
			out = append(out, s)
		}
	}
	return out
}

func (m model) convert() (float64, converter.Converter, error) {
	v, err := strconv.ParseFloat(m.input, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("bad value %q", m.input)
	}
	fu, _ := unit.Lookup(m.from)
	tu, _ := unit.Lookup(m.to)
	c, err := unit.ConverterTo(m.scope(), fu, tu)
	if err != nil {
		return 0, nil, err
	}
	return c.Convert(v), c, nil
}

func (m model) View() string {
	switch m.state {
	case stateFrom:
		return m.viewList("from", m.symbols)
	case stateTo:
		return m.viewList(m.from+" to", m.targets)
	case stateValue:
		return m.viewValue()
	}
	return ""
}

func (m model) header() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + viz.Banner() + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	if len(m.models) > 0 {
		b.WriteString("      " + dim.Render("model ") + magenta.Render(m.models[m.modelIdx]) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) viewList(title string, list []string) string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("      " + cyan.Render(title) + "\n\n")

	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := min(start+listHeight, len(list))
	ctx := m.scope()
	for i := start; i < end; i++ {
		u, _ := unit.Lookup(list[i])
		desc := unit.Dimension(ctx, u).String()
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", list[i])) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", list[i])) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter pick   esc back   q quit") + "\n")
	return b.String()
}

func (m model) viewValue() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("      " + dim.Render("value ") + white.Render(m.input+"▋") + "\n\n")

	out, c, err := m.convert()
	if err != nil {
		b.WriteString("      " + viz.RenderError(err) + "\n")
	} else {
		v, _ := strconv.ParseFloat(m.input, 64)
		b.WriteString("      " + viz.RenderConversion(v, m.from, out, m.to, 12) + "\n\n")
		b.WriteString("      " + dim.Render("converter ") + c.String() + "\n")

		fu, _ := unit.Lookup(m.from)
		tu, _ := unit.Lookup(m.to)
		if t, err := store.Sample(m.scope(), fu, tu, store.Linspace(0, 2*v, 32)); err == nil {
			b.WriteString("      " + dim.Render("0…2x      ") + viz.Sparkline(t.Out, 32) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      0-9 edit   s swap   m model   t theme   esc back   q quit") + "\n")
	return b.String()
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func RunConverter(ctx context.Context, from, to string) error {
	p := tea.NewProgram(newConverter(ctx, from, to), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
