package storage

import (
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetRun(t *testing.T) {
	store := openStore(t)

	rec := &RunRecord{
		LogDate:     "20170630",
		LogFile:     "nginx-access-ui.log-20170630",
		ReportPath:  "reports/report-2017.06.30.html",
		Lines:       1000,
		ParseErrors: 7,
		Records:     993,
		URLs:        120,
		ErrorRatio:  0.007,
		DurationSec: 1.25,
		FinishedAt:  "2017-07-01T03:00:00Z",
	}
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	got, err := store.GetRun("20170630")
	if err != nil {
		t.Fatalf("GetRun() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun() = nil, want the saved record")
	}
	if *got != *rec {
		t.Errorf("GetRun() = %+v, want %+v", got, rec)
	}
}

func TestGetRunAbsent(t *testing.T) {
	store := openStore(t)

	got, err := store.GetRun("19990101")
	if err != nil {
		t.Fatalf("GetRun() error: %v", err)
	}
	if got != nil {
		t.Errorf("GetRun(absent) = %+v, want nil", got)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)

	for _, date := range []string{"20170628", "20170630", "20170629"} {
		if err := store.SaveRun(&RunRecord{LogDate: date}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs", len(runs))
	}
	if runs[0].LogDate != "20170630" || runs[1].LogDate != "20170629" {
		t.Errorf("order = %s, %s; want 20170630, 20170629", runs[0].LogDate, runs[1].LogDate)
	}

	all, err := store.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("ListRuns(0) returned %d runs, want all 3", len(all))
	}
}
