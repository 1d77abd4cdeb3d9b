package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	m := NewRun()
	m.Lines.WithLabelValues("parsed").Add(95)
	m.Lines.WithLabelValues("failed").Add(5)
	m.Records.Set(95)
	m.URLs.Set(12)
	m.ErrorRatio.Set(0.05)
	m.Duration.Set(1.5)

	path := filepath.Join(t.TempDir(), "logreport.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		`logreport_lines_total{result="parsed"} 95`,
		`logreport_lines_total{result="failed"} 5`,
		"logreport_records_aggregated 95",
		"logreport_distinct_urls 12",
		"logreport_parse_error_ratio 0.05",
		"logreport_run_duration_seconds 1.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q; got:\n%s", want, out)
		}
	}

	// No stray temp files next to the target.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files beside the textfile: %v", entries)
	}
}

func TestSelfUsage(t *testing.T) {
	usage, err := SelfUsage()
	if err != nil {
		t.Skipf("process inspection unavailable: %v", err)
	}
	if usage.RSSBytes == 0 {
		t.Error("RSSBytes = 0, want a live process to have memory")
	}
}
