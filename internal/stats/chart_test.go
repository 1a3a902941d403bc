package stats

import (
	"strings"
	"testing"
	"time"

	"keydrill/internal/model"
)

func chartResult(finishedAt time.Time, wpm float64) model.Results {
	return model.Results{
		FinishedAt:   finishedAt,
		Stats:        model.Stats{WPM: wpm},
		DurationSecs: 30,
		Completed:    true,
	}
}

func TestBarChartEmpty(t *testing.T) {
	if got := BarChart(nil, 80, 0); got != "No previous results." {
		t.Fatalf("unexpected empty chart: %q", got)
	}
}

func TestBarChartLabels(t *testing.T) {
	finishedAt := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)
	chart := BarChart([]model.Results{chartResult(finishedAt, 42)}, 80, 4)

	lines := strings.Split(chart, "\n")
	// 4 bar rows plus WPM, HH:MM and MM/DD label rows.
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %q", len(lines), chart)
	}
	if !strings.Contains(lines[4], "42") {
		t.Fatalf("expected WPM label, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "09:30") {
		t.Fatalf("expected time label, got %q", lines[5])
	}
	if !strings.Contains(lines[6], "08/23") {
		t.Fatalf("expected date label, got %q", lines[6])
	}
}

func TestBarChartTailFitsWidth(t *testing.T) {
	base := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)
	results := make([]model.Results, 10)
	for i := range results {
		results[i] = chartResult(base.Add(time.Duration(i)*time.Minute), float64(30+i))
	}

	// Width 11 fits two 5-wide bars with a 1-wide gap.
	chart := BarChart(results, 11, 2)
	lines := strings.Split(chart, "\n")
	labelLine := lines[len(lines)-3]
	if !strings.Contains(labelLine, "38") || !strings.Contains(labelLine, "39") {
		t.Fatalf("expected the two newest results, got %q", labelLine)
	}
	if strings.Contains(labelLine, "37") {
		t.Fatalf("expected older results to be dropped, got %q", labelLine)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var b strings.Builder
	if err := RenderSummary(&b, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "No previous results.") {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestRenderHistoryTable(t *testing.T) {
	finishedAt := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)
	var b strings.Builder
	if err := RenderHistoryTable(&b, []model.Results{chartResult(finishedAt, 42)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "2026-08-23 09:30") {
		t.Fatalf("expected date column, got %q", out)
	}
	if !strings.Contains(out, "42.00") {
		t.Fatalf("expected WPM column, got %q", out)
	}
}
