package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"keydrill/internal/model"
)

const (
	chartBarWidth       = 5
	chartBarGap         = 1
	defaultChartHeight  = 12
	terminalWidthBackup = 80
)

// BarChart renders WPM values of past results as a column chart, newest on
// the right, with HH:MM and MM/DD label rows underneath each bar.
func BarChart(results []model.Results, width, height int) string {
	if len(results) == 0 {
		return "No previous results."
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if width < chartBarWidth {
		width = chartBarWidth
	}

	barsToShow := (width + chartBarGap) / (chartBarWidth + chartBarGap)
	if barsToShow < 1 {
		barsToShow = 1
	}
	if len(results) > barsToShow {
		results = results[len(results)-barsToShow:]
	}

	maxWPM := 1.0
	for _, r := range results {
		if r.Stats.WPM > maxWPM {
			maxWPM = r.Stats.WPM
		}
	}

	gap := strings.Repeat(" ", chartBarGap)
	var b strings.Builder
	for row := 0; row < height; row++ {
		// Rows are drawn top-down; a bar fills a row when its value
		// reaches the row's threshold.
		threshold := maxWPM * float64(height-row-1) / float64(height)
		cells := make([]string, 0, len(results))
		for _, r := range results {
			if r.Stats.WPM > threshold {
				cells = append(cells, strings.Repeat("█", chartBarWidth))
			} else {
				cells = append(cells, strings.Repeat(" ", chartBarWidth))
			}
		}
		b.WriteString(strings.Join(cells, gap))
		b.WriteByte('\n')
	}

	b.WriteString(labelRow(results, func(r model.Results) string {
		return fmt.Sprintf("%3.0f", math.Round(r.Stats.WPM))
	}))
	b.WriteByte('\n')
	b.WriteString(labelRow(results, func(r model.Results) string {
		return r.FinishedAt.Format("15:04")
	}))
	b.WriteByte('\n')
	b.WriteString(labelRow(results, func(r model.Results) string {
		return r.FinishedAt.Format("01/02")
	}))
	return b.String()
}

func labelRow(results []model.Results, format func(model.Results) string) string {
	gap := strings.Repeat(" ", chartBarGap)
	cells := make([]string, 0, len(results))
	for _, r := range results {
		label := format(r)
		if len(label) < chartBarWidth {
			label += strings.Repeat(" ", chartBarWidth-len(label))
		}
		cells = append(cells, label[:chartBarWidth])
	}
	return strings.Join(cells, gap)
}

// RenderSummary prints aggregate metrics for past results.
func RenderSummary(w io.Writer, results []model.Results) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No previous results.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	var totalDuration time.Duration
	for _, r := range results {
		totalWPM += r.Stats.WPM
		totalAcc += r.Stats.Accuracy
		totalDuration += time.Duration(r.DurationSecs) * time.Second
		if r.Stats.WPM > bestWPM {
			bestWPM = r.Stats.WPM
		}
	}
	count := float64(len(results))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tests: %d\n", len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg accuracy: %.2f%%\n", totalAcc/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time typing: %s\n", totalDuration); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints one line per past result.
func RenderHistoryTable(w io.Writer, results []model.Results) error {
	headers := []string{"Date", "WPM", "Raw acc", "Accuracy", "Duration", "Completed"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		completed := "yes"
		if !r.Completed {
			completed = "no"
		}
		rows = append(rows, []string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.2f", r.Stats.WPM),
			fmt.Sprintf("%.2f%%", r.Stats.RawAccuracy),
			fmt.Sprintf("%.2f%%", r.Stats.Accuracy),
			fmt.Sprintf("%ds", r.DurationSecs),
			completed,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// TerminalWidth returns the current terminal width or a backup value.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
