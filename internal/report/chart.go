package report

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"log-report/internal/stats"
)

// chartBars caps how many URLs end up on the chart; past ten the labels
// become unreadable anyway.
const chartBars = 10

// WriteChart renders a bar chart of the heaviest URLs by total request
// time to a PNG at path. The chart is a companion artifact: callers treat
// a failure here as a warning, not a run failure.
func (r *Renderer) WriteChart(path string, top []stats.URLStat) error {
	if len(top) == 0 {
		return nil
	}
	if len(top) > chartBars {
		top = top[:chartBars]
	}

	values := make([]chart.Value, 0, len(top))
	for _, st := range top {
		label := st.URL
		if len(label) > 24 {
			label = label[:21] + "..."
		}
		values = append(values, chart.Value{Label: label, Value: st.TimeSum})
	}

	bar := chart.BarChart{
		Title:      "Top URLs by total request time (s)",
		Width:      1024,
		Height:     512,
		BarWidth:   64,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       values,
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer out.Close()

	if err := bar.Render(chart.PNG, out); err != nil {
		os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
