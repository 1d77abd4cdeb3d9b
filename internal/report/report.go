package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"log-report/internal/logging"
	"log-report/internal/stats"
)

// Top returns the statistics sorted by total time descending, truncated to
// at most n entries. The sort is stable, so entries with equal time_sum
// keep their incoming order; the input slice is left untouched.
func Top(urlStats []stats.URLStat, n int) []stats.URLStat {
	out := make([]stats.URLStat, len(urlStats))
	copy(out, urlStats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeSum > out[j].TimeSum
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Filename names the report for a given log date, e.g. report-2017.06.30.html.
func Filename(date time.Time) string {
	return "report-" + date.Format("2006.01.02") + ".html"
}

// ChartFilename names the companion chart image for a given log date.
func ChartFilename(date time.Time) string {
	return "report-" + date.Format("2006.01.02") + ".png"
}

// tablePlaceholder is what the HTML template expects to be replaced with
// the JSON table. Kept as-is for compatibility with existing templates.
const tablePlaceholder = "$table_json"

// Renderer writes the report artifacts.
type Renderer struct {
	TemplatePath string
	Log          *logging.Logger
}

// WriteHTML renders the ranked statistics into the HTML template and
// writes the result to path. The write is atomic (temp file + rename), so
// a failed run never leaves a partial report behind.
func (r *Renderer) WriteHTML(path string, top []stats.URLStat) error {
	tpl, err := os.ReadFile(r.TemplatePath)
	if err != nil {
		return fmt.Errorf("read report template: %w", err)
	}

	table, err := json.Marshal(top)
	if err != nil {
		return fmt.Errorf("encode report table: %w", err)
	}
	html := strings.Replace(string(tpl), tablePlaceholder, string(table), 1)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("place report: %w", err)
	}
	return nil
}
