package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/unitlab/internal/store"
)

func Banner() string {
	return GradientText("unitlab", CurrentTheme.Primary, CurrentTheme.Secondary)
}

// FormatValue prints v with at most precision significant digits.
func FormatValue(v float64, precision int) string {
	if precision <= 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// RenderConversion renders "v from = out to".
func RenderConversion(v float64, from string, out float64, to string, precision int) string {
	unitStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)
	return Value.Render(FormatValue(v, precision)) + " " + unitStyle.Render(from) +
		Subtle.Render(" = ") +
		Value.Render(FormatValue(out, precision)) + " " + unitStyle.Render(to)
}

// RenderUnit renders a catalog entry as a titled panel.
func RenderUnit(e store.UnitEntry) string {
	var lines []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, Label.Render(fmt.Sprintf("%-12s", label))+" "+value)
	}

	add("kind", e.Kind)
	add("dimension", e.Dimension)
	add("system unit", e.SystemUnit)
	add("parent", e.Parent)
	add("to parent", e.ToParent)
	add("to system", e.ToSystem)
	if len(e.Elements) > 0 {
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = el.Unit + "^" + strconv.Itoa(el.Pow)
		}
		add("elements", strings.Join(parts, " "))
	}

	return Panel.Render(Title.Render(e.Symbol) + "\n" + strings.Join(lines, "\n"))
}

func RenderError(err error) string {
	return ErrorStyle().Render("error: ") + err.Error()
}

// PlotConversion draws the output column of t against its samples.
func PlotConversion(t *store.Table, height, width int) string {
	if t == nil || len(t.Out) == 0 {
		return Subtle.Render("no samples")
	}
	caption := fmt.Sprintf("%s → %s over [%s, %s] %s",
		t.From, t.To, FormatValue(t.In[0], 6), FormatValue(t.In[len(t.In)-1], 6), t.From)
	return asciigraph.Plot(t.Out,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
