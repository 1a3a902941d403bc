package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keydrill/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fakeClock) advance(d time.Duration)         { c.now = c.now.Add(d) }

func newTestModel(text string, duration time.Duration) (*Model, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)}
	cfg := model.Config{Duration: duration}
	return NewModel(cfg, staticText(text+" "), nil, clock), clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuitWhilePausedCancels(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.mode != modeCancelled {
		t.Fatalf("expected cancelled mode, got %d", m.mode)
	}
	results := m.Results()
	if results.Completed {
		t.Fatalf("expected incomplete results")
	}
	if results.Stats != (model.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", results.Stats)
	}
}

func TestTypingClassifiesKeystrokes(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("s"))
	if m.mode != modeRunning {
		t.Fatalf("expected running mode after 's'")
	}

	m.Update(keyRunes("h"))
	m.Update(keyRunes("a"))
	m.Update(keyRunes("x"))
	if m.rawValid != 2 {
		t.Fatalf("expected 2 valid keystrokes, got %d", m.rawValid)
	}
	if m.rawMistakes != 1 {
		t.Fatalf("expected 1 mistake, got %d", m.rawMistakes)
	}
	if string(m.input) != "hax" {
		t.Fatalf("unexpected input buffer %q", string(m.input))
	}
}

func TestTypingKeysIgnoredBeforeStart(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("h"))
	if len(m.input) != 0 {
		t.Fatalf("expected keystrokes to be ignored while paused")
	}
}

func TestBackspaceNeverRevisesRawCounters(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("s"))
	m.Update(keyRunes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(keyRunes("h"))

	if string(m.input) != "h" {
		t.Fatalf("unexpected input buffer %q", string(m.input))
	}
	if m.rawValid != 1 || m.rawMistakes != 1 {
		t.Fatalf("expected counters 1/1, got %d/%d", m.rawValid, m.rawMistakes)
	}
}

func TestWordDeleteKeepsSeparatorSpace(t *testing.T) {
	m, _ := newTestModel("halo halo", 30*time.Second)
	m.Update(keyRunes("s"))
	for _, r := range "halo ha" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if string(m.input) != "halo " {
		t.Fatalf("expected %q after word delete, got %q", "halo ", string(m.input))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	if string(m.input) != "" {
		t.Fatalf("expected empty buffer after second word delete, got %q", string(m.input))
	}
}

func TestWordDeleteCollapsesDoubledSpaces(t *testing.T) {
	m, _ := newTestModel("ab cd", 30*time.Second)
	m.Update(keyRunes("s"))
	for _, r := range "ab  cd" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if string(m.input) != "ab " {
		t.Fatalf("expected single trailing space %q, got %q", "ab ", string(m.input))
	}
}

func TestWordDeleteOnTrailingSpaces(t *testing.T) {
	m, _ := newTestModel("ab cd", 30*time.Second)
	m.Update(keyRunes("s"))
	for _, r := range "ab  " {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if string(m.input) != "" {
		t.Fatalf("expected empty buffer, got %q", string(m.input))
	}
}

func TestHelpOverlayToggle(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)

	m.Update(keyRunes("?"))
	if !m.showHelp {
		t.Fatalf("expected help overlay to open")
	}
	m.Update(keyRunes("?"))
	if m.showHelp {
		t.Fatalf("expected help overlay to close")
	}
}

func TestHelpOverlayClosesOnResume(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)

	m.Update(keyRunes("?"))
	m.Update(keyRunes("s"))
	if m.showHelp {
		t.Fatalf("expected help overlay to close on resume")
	}
	if m.mode != modeRunning {
		t.Fatalf("expected running mode, got %d", m.mode)
	}

	// While running '?' is typed text, not a toggle.
	m.Update(keyRunes("?"))
	if m.showHelp {
		t.Fatalf("expected '?' to be typed while running")
	}
	if string(m.input) != "?" {
		t.Fatalf("expected '?' in the input buffer, got %q", string(m.input))
	}
}

func TestPausedTimeDoesNotCount(t *testing.T) {
	m, clock := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("s"))

	clock.advance(10 * time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modePaused {
		t.Fatalf("expected paused mode after esc")
	}

	clock.advance(5 * time.Second)
	if left := m.timeLeft(); left != 20*time.Second {
		t.Fatalf("expected 20s left while paused, got %s", left)
	}

	m.Update(keyRunes("s"))
	clock.advance(19 * time.Second)
	m.Update(tickMsg(clock.now))
	if m.mode != modeRunning {
		t.Fatalf("expected test still running, got mode %d", m.mode)
	}

	clock.advance(time.Second)
	m.Update(tickMsg(clock.now))
	if m.mode != modeFinished {
		t.Fatalf("expected finished mode, got %d", m.mode)
	}
}

func TestTimeLeftBeforeStart(t *testing.T) {
	m, clock := newTestModel("halo", 30*time.Second)
	clock.advance(time.Hour)
	if left := m.timeLeft(); left != 30*time.Second {
		t.Fatalf("expected full duration before start, got %s", left)
	}
}

func TestFinishComputesStats(t *testing.T) {
	m, clock := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("s"))
	for _, r := range "halo " {
		m.Update(keyRunes(string(r)))
	}
	clock.advance(30 * time.Second)
	m.Update(tickMsg(clock.now))

	if m.mode != modeFinished {
		t.Fatalf("expected finished mode, got %d", m.mode)
	}
	results := m.Results()
	if !results.Completed {
		t.Fatalf("expected completed results")
	}
	if results.Stats.WPM != 2.0 {
		t.Fatalf("expected WPM 2.0, got %f", results.Stats.WPM)
	}
	if results.Stats.Accuracy != 100.0 {
		t.Fatalf("expected 100%% accuracy, got %f", results.Stats.Accuracy)
	}
	if results.DurationSecs != 30 {
		t.Fatalf("expected 30s duration, got %d", results.DurationSecs)
	}
}

func TestCtrlCWhileRunningCancels(t *testing.T) {
	m, _ := newTestModel("halo", 30*time.Second)
	m.Update(keyRunes("s"))
	m.Update(keyRunes("h"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.mode != modeCancelled {
		t.Fatalf("expected cancelled mode, got %d", m.mode)
	}
	if m.Results().Completed {
		t.Fatalf("expected incomplete results")
	}
}
