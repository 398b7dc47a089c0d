package logging

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var forceLipglossColorOnce sync.Once

func ensureLipglossColorOutput() {
	forceLipglossColorOnce.Do(func() {
		lipgloss.SetColorProfile(termenv.TrueColor)
	})
}

type fieldStyles struct {
	key   lipgloss.Style
	value lipgloss.Style
	sep   lipgloss.Style
	punct lipgloss.Style
}

func newFieldStyles() fieldStyles {
	return fieldStyles{
		key:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		sep:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		punct: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// FormatEventANSI renders one event as a colored header line followed by
// inline key=value fields and boxed JSON blocks.
func FormatEventANSI(event Event) string {
	ensureLipglossColorOutput()
	ts := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(event.Time.Format("15:04:05.000"))
	levelLabel, levelStyle := levelBadge(event.Level)
	msg := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render(event.Message)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, ts, " ", levelStyle.Render(levelLabel), " ", msg))
	if len(event.Fields) == 0 {
		b.WriteString("\n")
		return b.String()
	}

	styles := newFieldStyles()
	var inline, blocks []string
	for _, key := range orderedFieldKeys(event.Level, event.Fields) {
		value := event.Fields[key]
		if pretty, ok := prettyJSONString(value); ok {
			blocks = append(blocks, styles.jsonBlock(key, pretty))
			continue
		}
		inline = append(inline, styles.key.Render(key)+styles.sep.Render("=")+styles.value.Render(formatFieldValue(value)))
	}
	if len(inline) > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Join(inline, " "))
	}
	for _, block := range blocks {
		b.WriteString("\n  ")
		b.WriteString(block)
	}
	b.WriteString("\n")
	return b.String()
}

func (s fieldStyles) jsonBlock(key string, pretty string) string {
	lines := strings.Split(pretty, "\n")
	for i, line := range lines {
		lines[i] = s.colorizeJSONLine(line)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return s.key.Render(key) + s.sep.Render("=") + "\n" + box
}

// colorizeJSONLine dims structural characters outside string literals.
func (s fieldStyles) colorizeJSONLine(line string) string {
	var b strings.Builder
	inString := false
	escaped := false
	for _, r := range line {
		switch {
		case r == '"':
			b.WriteString(s.punct.Render(string(r)))
			if !escaped {
				inString = !inString
			}
			escaped = false
		case inString && r == '\\':
			b.WriteString(s.value.Render(string(r)))
			escaped = !escaped
		case !inString && strings.ContainsRune("{}[]:,", r):
			b.WriteString(s.punct.Render(string(r)))
			escaped = false
		case r == ' ' || r == '\t':
			b.WriteRune(r)
			escaped = false
		default:
			b.WriteString(s.value.Render(string(r)))
			escaped = false
		}
	}
	return b.String()
}
