// Package tui provides the Bubble Tea typing test interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keydrill/internal/model"
	statsPkg "keydrill/internal/stats"
	"keydrill/internal/store"
)

// mode enumerates the session states. Paused is the initial state;
// Finished and Cancelled are terminal.
type mode int

const (
	modePaused mode = iota
	modeRunning
	modeFinished
	modeCancelled
)

const (
	tickRate      = time.Second
	recentWPMSize = 30
)

type tickMsg time.Time

// Model implements the Bubble Tea typing test session.
type Model struct {
	cfg      model.Config
	provider ExpectedText
	store    *store.Store
	clock    Clock

	mode      mode
	input     []rune
	started   bool
	showHelp  bool
	startedAt time.Time
	pausedAt  time.Time

	rawValid    uint64
	rawMistakes uint64

	width  int
	height int

	results   model.Results
	recentWPM []float64
}

// NewModel constructs a typing test session. The store may be nil when
// result saving is disabled.
func NewModel(cfg model.Config, provider ExpectedText, st *store.Store, clock Clock) *Model {
	return &Model{
		cfg:      cfg,
		provider: provider,
		store:    st,
		clock:    clock,
	}
}

// Results returns the outcome of the session. Only meaningful after the
// session reached a terminal state.
func (m *Model) Results() model.Results {
	return m.results
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.mode == modeRunning {
			m.checkTimeout()
		}
		if m.mode == modeFinished || m.mode == modeCancelled {
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePaused:
		return m.handlePausedKey(msg)
	case modeRunning:
		return m.handleRunningKey(msg)
	case modeFinished:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handlePausedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.resume()
		return m, nil
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit
	case tea.KeyEsc:
		m.pause()
		return m, nil
	case tea.KeyCtrlH, tea.KeyCtrlW:
		// Many terminals report ctrl+backspace as ctrl+h or ctrl+w.
		m.removeLastWord()
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		if msg.Alt {
			m.removeLastWord()
			return m, nil
		}
		m.removeLastRune()
		return m, nil
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
		return m, nil
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		m.handleRunes(msg.Runes)
		return m, nil
	default:
		return m, nil
	}
}

// resume starts the clock on first entry; later entries shift the start
// anchor forward by the paused interval so paused time never counts
// against the test duration.
func (m *Model) resume() {
	if m.started {
		m.startedAt = m.startedAt.Add(m.clock.Since(m.pausedAt))
	} else {
		m.startedAt = m.clock.Now()
		m.started = true
	}
	m.showHelp = false
	m.mode = modeRunning
}

func (m *Model) pause() {
	m.pausedAt = m.clock.Now()
	m.mode = modePaused
}

func (m *Model) cancel() {
	m.results = m.newResults(model.Stats{}, false)
	m.mode = modeCancelled
}

// handleRunes appends typed characters and classifies each keystroke
// against the expected character at its position. The raw counters are
// monotonic; backspace never takes a classification back.
func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		pos := len(m.input)
		expected := []rune(m.provider.Text(pos + 1))
		m.input = append(m.input, r)
		if r == expected[pos] {
			m.rawValid++
		} else {
			m.rawMistakes++
		}
	}
}

func (m *Model) removeLastRune() {
	if len(m.input) == 0 {
		return
	}
	m.input = m.input[:len(m.input)-1]
}

// removeLastWord drops the trailing word plus any space runs around it,
// then re-appends a single separator space when input remains. Doubled
// spaces never survive a word delete.
func (m *Model) removeLastWord() {
	i := len(m.input)
	for i > 0 && m.input[i-1] == ' ' {
		i--
	}
	for i > 0 && m.input[i-1] != ' ' {
		i--
	}
	for i > 0 && m.input[i-1] == ' ' {
		i--
	}
	m.input = m.input[:i]
	if i > 0 {
		m.input = append(m.input, ' ')
	}
}

func (m *Model) checkTimeout() {
	if !m.started {
		return
	}
	if m.clock.Since(m.startedAt) >= m.cfg.Duration {
		m.finish()
	}
}

func (m *Model) finish() {
	expected := []rune(m.provider.Text(len(m.input)))
	st := statsPkg.Compute(m.input, expected, m.rawValid, m.rawMistakes, m.cfg.Duration)
	m.results = m.newResults(st, true)
	m.mode = modeFinished

	if m.store == nil {
		return
	}
	ctx := context.Background()
	if m.cfg.SaveResults {
		if _, err := m.store.InsertResult(ctx, m.results); err != nil {
			logErrf("failed to save results: %v\n", err)
		}
	}
	past, err := m.store.ListResults(ctx, model.HistoryFilter{Last: recentWPMSize})
	if err != nil {
		logErrf("failed to load previous results: %v\n", err)
		return
	}
	m.recentWPM = statsPkg.WPMSeries(past)
}

func (m *Model) newResults(st model.Stats, completed bool) model.Results {
	return model.Results{
		FinishedAt:     m.clock.Now(),
		Stats:          st,
		DurationSecs:   int64(m.cfg.Duration / time.Second),
		Numbers:        m.cfg.Numbers,
		NumbersRatio:   m.cfg.NumbersRatio,
		Uppercase:      m.cfg.Uppercase,
		UppercaseRatio: m.cfg.UppercaseRatio,
		Symbols:        m.cfg.Symbols,
		SymbolsRatio:   m.cfg.SymbolsRatio,
		DictionaryPath: m.cfg.DictionaryPath,
		Completed:      completed,
	}
}

// timeLeft reports the remaining test time. While paused, the interval
// since the pause anchor is excluded so the countdown stands still.
func (m *Model) timeLeft() time.Duration {
	if !m.started {
		return m.cfg.Duration
	}
	elapsed := m.clock.Since(m.startedAt)
	if m.mode == modePaused {
		elapsed -= m.clock.Since(m.pausedAt)
	}
	left := m.cfg.Duration - elapsed
	if left < 0 {
		left = 0
	}
	return left
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
