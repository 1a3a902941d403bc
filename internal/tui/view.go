package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"keydrill/internal/model"
	statsPkg "keydrill/internal/stats"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0D468"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	aheadStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	cursorStyle    = pendingStyle.Underline(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

const viewWidthBackup = 80

// ApplyColors overrides the default palette for typed characters with the
// configured colors. Empty values keep the defaults.
func ApplyColors(c model.Colors) {
	if c.CorrectFg != "" {
		correctStyle = correctStyle.Foreground(lipgloss.Color(c.CorrectFg))
	}
	if c.CorrectBg != "" {
		correctStyle = correctStyle.Background(lipgloss.Color(c.CorrectBg))
	}
	if c.IncorrectFg != "" {
		incorrectStyle = incorrectStyle.Foreground(lipgloss.Color(c.IncorrectFg))
	}
	if c.IncorrectBg != "" {
		incorrectStyle = incorrectStyle.Background(lipgloss.Color(c.IncorrectBg))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case modeFinished:
		return m.renderResults()
	case modeCancelled:
		return ""
	default:
		width := m.width
		if width < 1 {
			width = viewWidthBackup
		}
		if m.showHelp {
			return m.renderInfoLine(width) + "\n" + renderHelp()
		}
		return m.renderInfoLine(width) + "\n" + m.renderTypingArea(width)
	}
}

func renderHelp() string {
	lines := []string{
		titleStyle.Render("Help"),
		"",
		"Navigation:",
		"  s                   start or resume the test",
		"  esc                 pause the test",
		"  q                   quit while paused",
		"  ctrl+c              cancel the test",
		"  backspace           delete the last character",
		"  ctrl+w, ctrl+h      delete the last word",
		"  ?                   close this window",
		"",
		"Configuration:",
		"  --duration <secs>   set test duration",
		"  --numbers           include words made of digits",
		"  --uppercase         capitalize some words",
		"  --symbols           decorate some words with punctuation",
		"",
		infoStyle.Render("run 'keydrill --help' for the full flag list"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderInfoLine(width int) string {
	secs := int(m.timeLeft().Round(tickRate).Seconds())
	label := "seconds"
	if secs == 1 {
		label = "second"
	}
	left := fmt.Sprintf("%d %s left", secs, label)

	var help string
	switch {
	case m.mode == modeRunning:
		help = "press 'esc' to pause the test"
	case m.started:
		help = "press 's' to unpause the test, '?' for help, 'q' to quit"
	default:
		help = "press 's' to start the test, '?' for help, 'q' to quit"
	}

	pad := width - runewidth.StringWidth(left) - runewidth.StringWidth(help)
	if pad < 1 {
		pad = 1
	}
	return infoStyle.Render(left) + strings.Repeat(" ", pad) + infoStyle.Render(help)
}

// renderTypingArea draws the three-way split of the expected text: typed
// characters colored by correctness, the remainder of the cursor's line,
// and the lookahead line. The expected character is always displayed,
// never the typo.
func (m *Model) renderTypingArea(width int) string {
	typed, rest, following := Layout(m.provider, len(m.input), width)

	var b strings.Builder
	col := 0
	cell := func(s string) {
		b.WriteString(s)
		col++
		if col == width {
			b.WriteByte('\n')
			col = 0
		}
	}

	for i, r := range []rune(typed) {
		style := correctStyle
		if i < len(m.input) && m.input[i] != r {
			style = incorrectStyle
		}
		cell(style.Render(string(r)))
	}
	for i, r := range []rune(rest) {
		style := pendingStyle
		if i == 0 && m.mode == modeRunning {
			style = cursorStyle
		}
		cell(style.Render(string(r)))
	}
	for _, r := range []rune(following) {
		cell(aheadStyle.Render(string(r)))
	}
	return b.String()
}

func (m *Model) renderResults() string {
	st := m.results.Stats
	lines := []string{
		titleStyle.Render("Test completed"),
		"",
		fmt.Sprintf("WPM: %.2f", st.WPM),
		fmt.Sprintf("Raw accuracy: %.2f%%", st.RawAccuracy),
		fmt.Sprintf("Raw valid characters: %d", st.RawValidCharacters),
		fmt.Sprintf("Raw mistakes: %d", st.RawMistakes),
		fmt.Sprintf("Raw characters typed: %d", st.RawTypedCharacters),
		fmt.Sprintf("Accuracy after corrections: %.2f%%", st.Accuracy),
		fmt.Sprintf("Valid characters after corrections: %d", st.ValidCharacters),
		fmt.Sprintf("Mistakes after corrections: %d", st.Mistakes),
		fmt.Sprintf("Characters typed after corrections: %d", st.TypedCharacters),
	}
	if len(m.recentWPM) > 1 {
		lines = append(lines, "", "Recent WPM: "+statsPkg.Sparkline(m.recentWPM))
	}
	lines = append(lines, "", infoStyle.Render("press 'q' to quit"))
	return strings.Join(lines, "\n")
}
