package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

func TestHBarChartKeepsZeroRows(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := HBarChart([]Bar{
		{Label: "Rent", Value: 500, Text: "500.00"},
		{Label: "Grocery", Value: 0, Text: "0.00"},
	}, 40)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "Grocery") || strings.Contains(lines[1], "█") {
		t.Errorf("zero row should keep its label and draw no bar: %q", lines[1])
	}
	if strings.Count(lines[0], "█") == 0 {
		t.Error("largest row should draw a bar")
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Error("rows should align to the same width")
	}
}

func plainAxis(v float64) string { return fmt.Sprintf("%.0f", v) }

func TestColumnChartLayout(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := ColumnChart([]float64{0, 50, 100}, []string{"Oct 1", "2", "3"}, plainAxis, theme.Active.Blue, 40, 4)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 4 rows + axis + labels", len(lines))
	}
	if !strings.Contains(lines[0], "100") {
		t.Errorf("top row should carry the peak label: %q", lines[0])
	}
	if !strings.Contains(lines[0], "█") {
		t.Errorf("peak column should reach the top row: %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[5]), "Oct 1") || !strings.HasSuffix(lines[5], "3") {
		t.Errorf("x labels = %q, want first and last day", lines[5])
	}
}

func TestColumnChartBucketsWhenNarrow(t *testing.T) {
	values := make([]float64, 31)
	for i := range values {
		values[i] = 1
	}
	got, _ := bucketValues(values, nil, 10)
	if len(got) != 10 {
		t.Fatalf("buckets = %d, want 10", len(got))
	}
	sum := 0.0
	for _, v := range got {
		sum += v
	}
	if sum != 31 {
		t.Errorf("bucket sum = %v, want 31", sum)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('f'); got != 1 {
		t.Errorf("TabIdxByKey('f') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty sparkline should render nothing")
	}
}
