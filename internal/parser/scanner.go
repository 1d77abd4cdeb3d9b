package parser

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"log-report/internal/logging"
)

// ErrBudgetExceeded is reported by Scanner.Err once the input is exhausted
// and the ratio of unparsable lines is over the configured limit.
var ErrBudgetExceeded = errors.New("errors limit exceeded")

// ScanOptions tunes a Scanner.
type ScanOptions struct {
	// ErrorsLimit is the tolerated fraction of failed lines, checked after
	// the whole file has been read. The ratio must strictly exceed the
	// limit to fail the run. A negative value disables the check.
	ErrorsLimit float64
	Logger      *logging.Logger
}

// Scanner streams records out of a rotated access log, one line at a time,
// so the file never has to fit in memory. Files ending in .gz are
// decompressed transparently. Lines that fail to parse are counted and
// skipped. Usage mirrors bufio.Scanner: Scan/Record until Scan returns
// false, then check Err.
type Scanner struct {
	file   *os.File
	gz     *gzip.Reader
	lines  *bufio.Scanner
	format Format
	opts   ScanOptions

	rec    Record
	read   int
	failed int
	err    error
	done   bool
	closed bool
}

// Open prepares a Scanner over the file at path.
func Open(path string, format Format, opts ScanOptions) (*Scanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	s := &Scanner{file: file, format: format, opts: opts}
	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open gzip stream %s: %w", path, err)
		}
		s.gz = gz
		r = gz
	}

	s.lines = bufio.NewScanner(r)
	s.lines.Buffer(make([]byte, 64*1024), 1024*1024)
	return s, nil
}

// Scan advances to the next successfully parsed record.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.lines.Scan() {
		s.read++
		rec, ok := ParseLine(s.lines.Text(), s.format)
		if !ok {
			s.failed++
			if s.opts.Logger != nil {
				s.opts.Logger.Debugf("can't parse line: %s", s.lines.Text())
			}
			continue
		}
		s.rec = rec
		return true
	}
	s.finish()
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first error hit while reading, or ErrBudgetExceeded when
// the input is exhausted and the failure ratio is over the limit. Records
// already yielded stay valid either way.
func (s *Scanner) Err() error { return s.err }

// Lines returns how many lines were read so far.
func (s *Scanner) Lines() int { return s.read }

// Failed returns how many lines failed to parse so far.
func (s *Scanner) Failed() int { return s.failed }

// Close releases the underlying file. Safe to call more than once.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.gz != nil {
		s.gz.Close()
	}
	return s.file.Close()
}

func (s *Scanner) finish() {
	s.done = true
	if err := s.lines.Err(); err != nil {
		s.err = fmt.Errorf("read log file: %w", err)
		return
	}
	if s.opts.ErrorsLimit >= 0 && s.read > 0 {
		ratio := float64(s.failed) / float64(s.read)
		if ratio > s.opts.ErrorsLimit {
			s.err = fmt.Errorf("%w: %d of %d lines unparsable (ratio %.4f, limit %.4f)",
				ErrBudgetExceeded, s.failed, s.read, ratio, s.opts.ErrorsLimit)
		}
	}
}
