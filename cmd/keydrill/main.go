// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keydrill/internal/config"
	"keydrill/internal/corpus"
	"keydrill/internal/historyui"
	"keydrill/internal/model"
	"keydrill/internal/stats"
	"keydrill/internal/store"
	"keydrill/internal/tui"
	"keydrill/internal/wordlist"
)

const (
	defaultDurationSecs   = int64(30)
	defaultNumbersRatio   = 0.05
	defaultUppercaseRatio = 0.15
	defaultSymbolsRatio   = 0.10
	historyCurveWindow    = 5
)

var (
	testDurationSecs   int64
	testNumbers        bool
	testNumbersRatio   float64
	testUppercase      bool
	testUppercaseRatio float64
	testSymbols        bool
	testSymbolsRatio   float64
	testDictionary     string
	testSaveResults    bool

	historyPlain bool
	historyLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Terminal typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().Int64Var(&testDurationSecs, "duration", defaultDurationSecs, "test duration in seconds")
	rootCmd.Flags().BoolVar(&testNumbers, "numbers", false, "insert words consisting of digits")
	rootCmd.Flags().Float64Var(&testNumbersRatio, "numbers-ratio", defaultNumbersRatio, "fraction of words replaced by digits (0-1)")
	rootCmd.Flags().BoolVar(&testUppercase, "uppercase", false, "capitalize the first letter of some words")
	rootCmd.Flags().Float64Var(&testUppercaseRatio, "uppercase-ratio", defaultUppercaseRatio, "fraction of words capitalized (0-1)")
	rootCmd.Flags().BoolVar(&testSymbols, "symbols", false, "decorate some words with punctuation")
	rootCmd.Flags().Float64Var(&testSymbolsRatio, "symbols-ratio", defaultSymbolsRatio, "fraction of words decorated (0-1)")
	rootCmd.Flags().StringVar(&testDictionary, "dictionary", "", "path to a custom word list (default: built-in)")
	rootCmd.Flags().BoolVar(&testSaveResults, "save-results", true, "save finished tests to the history database")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyInt64Config(cmd, "duration", &testDurationSecs, fileCfg.Test.Duration)
	applyBoolConfig(cmd, "numbers", &testNumbers, fileCfg.Test.Numbers)
	applyFloatConfig(cmd, "numbers-ratio", &testNumbersRatio, fileCfg.Test.NumbersRatio)
	applyBoolConfig(cmd, "uppercase", &testUppercase, fileCfg.Test.Uppercase)
	applyFloatConfig(cmd, "uppercase-ratio", &testUppercaseRatio, fileCfg.Test.UppercaseRatio)
	applyBoolConfig(cmd, "symbols", &testSymbols, fileCfg.Test.Symbols)
	applyFloatConfig(cmd, "symbols-ratio", &testSymbolsRatio, fileCfg.Test.SymbolsRatio)
	applyStringConfig(cmd, "dictionary", &testDictionary, fileCfg.Test.Dictionary)
	applyBoolConfig(cmd, "save-results", &testSaveResults, fileCfg.Test.SaveResults)

	cfg := model.Config{
		Duration:       time.Duration(testDurationSecs) * time.Second,
		Numbers:        testNumbers,
		NumbersRatio:   testNumbersRatio,
		Uppercase:      testUppercase,
		UppercaseRatio: testUppercaseRatio,
		Symbols:        testSymbols,
		SymbolsRatio:   testSymbolsRatio,
		DictionaryPath: testDictionary,
		SaveResults:    testSaveResults,
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	normalizeRatios(&cfg)

	words, err := loadWords(cfg.DictionaryPath)
	if err != nil {
		return err
	}

	text, err := corpus.New().Build(words, cfg)
	if err != nil {
		return fmt.Errorf("failed to generate text: %w", err)
	}
	provider, err := corpus.NewProvider(text)
	if err != nil {
		return fmt.Errorf("failed to prepare expected text: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	tui.ApplyColors(model.Colors{
		CorrectFg:   colorValue(fileCfg.Colors.CorrectFg),
		CorrectBg:   colorValue(fileCfg.Colors.CorrectBg),
		IncorrectFg: colorValue(fileCfg.Colors.IncorrectFg),
		IncorrectBg: colorValue(fileCfg.Colors.IncorrectBg),
	})

	testModel := tui.NewModel(cfg, provider, st, tui.SystemClock())
	program := tea.NewProgram(testModel, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := final.(*tui.Model); ok && !m.Results().Completed {
		fmt.Println("Test not finished.")
	}
	return nil
}

func loadWords(path string) ([]string, error) {
	if path == "" {
		return wordlist.Builtin(), nil
	}
	words, err := wordlist.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	return words, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past test results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print results to stdout instead of the TUI")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to the most recent N results")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	filter := model.HistoryFilter{Last: historyLast}

	if historyPlain {
		results, err := st.ListResults(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}
		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, results); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if err := stats.RenderHistoryTable(out, results); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
		if len(results) > 1 {
			curve := stats.MovingAverage(stats.WPMSeries(results), historyCurveWindow)
			if _, err := fmt.Fprintf(out, "WPM trend: %s\n\n", stats.Sparkline(curve)); err != nil {
				return fmt.Errorf("failed to write trend: %w", err)
			}
		}
		if _, err := fmt.Fprintln(out, stats.BarChart(results, stats.TerminalWidth(), 0)); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		return nil
	}

	historyModel := historyui.NewModel(st, filter)
	program := tea.NewProgram(historyModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func colorValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test duration in seconds
# numbers = false         # Insert words consisting of digits
# numbers-ratio = %.2f    # Fraction of words replaced by digits (0-1)
# uppercase = false       # Capitalize the first letter of some words
# uppercase-ratio = %.2f  # Fraction of words capitalized (0-1)
# symbols = false         # Decorate some words with punctuation
# symbols-ratio = %.2f    # Fraction of words decorated (0-1)
# dictionary = ""         # Path to a custom word list
# save-results = true     # Save finished tests to the history database

[colors]
# correct-fg = "#A0D468"   # Correctly typed characters (foreground)
# correct-bg = ""          # Correctly typed characters (background)
# incorrect-fg = "#FF4D4F" # Mistyped characters (foreground)
# incorrect-bg = ""        # Mistyped characters (background)
`,
		defaultDurationSecs,
		defaultNumbersRatio,
		defaultUppercaseRatio,
		defaultSymbolsRatio,
	)
}

// normalizeRatios drops out-of-range perturbation ratios and keeps the
// defaults instead of failing the run.
func normalizeRatios(cfg *model.Config) {
	if !config.ValidRatio(cfg.NumbersRatio) {
		logErrf("ignoring numbers-ratio %v (must be between 0 and 1)\n", cfg.NumbersRatio)
		cfg.NumbersRatio = defaultNumbersRatio
	}
	if !config.ValidRatio(cfg.UppercaseRatio) {
		logErrf("ignoring uppercase-ratio %v (must be between 0 and 1)\n", cfg.UppercaseRatio)
		cfg.UppercaseRatio = defaultUppercaseRatio
	}
	if !config.ValidRatio(cfg.SymbolsRatio) {
		logErrf("ignoring symbols-ratio %v (must be between 0 and 1)\n", cfg.SymbolsRatio)
		cfg.SymbolsRatio = defaultSymbolsRatio
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
