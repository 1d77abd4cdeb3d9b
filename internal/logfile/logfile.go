package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Rotated access logs look like nginx-access-ui.log-20170630 or
// nginx-access-ui.log-20170630.gz; anything else is ignored.
var namePattern = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz)?$`)

// LogFile describes one rotated access log found in the log directory.
type LogFile struct {
	Name string
	Path string
	Date time.Time
}

// Compressed reports whether the file needs gzip decompression.
func (f *LogFile) Compressed() bool {
	return strings.HasSuffix(f.Name, ".gz")
}

// Find returns the log file with the latest embedded date, or nil when the
// directory does not exist, is not a directory, or contains no matching
// files. Names that match the pattern but do not carry a valid calendar
// date are skipped. When two names carry the same date the first one in
// directory order wins; os.ReadDir sorts by name, so the plain file beats
// its .gz sibling.
func Find(dir string) (*LogFile, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read log dir %s: %w", dir, err)
	}

	var latest *LogFile
	for _, entry := range entries {
		m := namePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		date, err := time.Parse("20060102", m[1])
		if err != nil {
			continue
		}
		if latest == nil || date.After(latest.Date) {
			latest = &LogFile{
				Name: entry.Name(),
				Path: filepath.Join(dir, entry.Name()),
				Date: date,
			}
		}
	}
	return latest, nil
}
