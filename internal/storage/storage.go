package storage

// RunRecord describes one completed report run, keyed by the log date it
// processed. It doubles as an audit trail and as the idempotence check for
// scheduled re-runs.
type RunRecord struct {
	LogDate     string  `json:"log_date"` // YYYYMMDD
	LogFile     string  `json:"log_file"`
	ReportPath  string  `json:"report_path"`
	Lines       int     `json:"lines"`
	ParseErrors int     `json:"parse_errors"`
	Records     int     `json:"records"`
	URLs        int     `json:"urls"`
	ErrorRatio  float64 `json:"error_ratio"`
	DurationSec float64 `json:"duration_sec"`
	FinishedAt  string  `json:"finished_at"` // RFC3339
}

// Store is the persistence interface for run history.
type Store interface {
	// SaveRun records a completed run. Called only after the report file
	// has been fully written.
	SaveRun(rec *RunRecord) error

	// GetRun returns the run for a log date, or nil when none exists.
	GetRun(logDate string) (*RunRecord, error)

	// ListRuns returns up to limit runs, most recent log date first.
	ListRuns(limit int) ([]RunRecord, error)

	Close() error
}
