package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"log-report/internal/config"
	"log-report/internal/logfile"
	"log-report/internal/logging"
	"log-report/internal/metrics"
	"log-report/internal/parser"
	"log-report/internal/report"
	"log-report/internal/stats"
	"log-report/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	out := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := logging.New(out, logging.ParseLevel(cfg.LogLevel))

	if err := run(cfg, logger); err != nil {
		logger.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	start := time.Now()

	last, err := logfile.Find(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("scan log dir: %w", err)
	}
	if last == nil {
		logger.Errorf("can't find log files in %s", cfg.LogDir)
		return nil
	}

	reportPath := filepath.Join(cfg.ReportDir, report.Filename(last.Date))
	if _, err := os.Stat(reportPath); err == nil {
		logger.Infof("report %s already exists, nothing to do", reportPath)
		return nil
	}

	store, err := storage.NewBoltStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer store.Close()

	logDate := last.Date.Format("20060102")
	if prev, err := store.GetRun(logDate); err != nil {
		logger.Warnf("run history lookup failed: %v", err)
	} else if prev != nil {
		logger.Infof("log %s already processed at %s (%s)", last.Name, prev.FinishedAt, prev.ReportPath)
		return nil
	}

	format, err := parser.Compile(parser.DefaultTemplate)
	if err != nil {
		return fmt.Errorf("compile log format: %w", err)
	}

	logger.Infof("start parsing %s", last.Path)
	scanner, err := parser.Open(last.Path, format, parser.ScanOptions{
		ErrorsLimit: cfg.ErrorsLimit,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer scanner.Close()

	m := metrics.NewRun()

	urlStats, totals, err := stats.Aggregate(scanner)
	m.Lines.WithLabelValues("parsed").Add(float64(scanner.Lines() - scanner.Failed()))
	m.Lines.WithLabelValues("failed").Add(float64(scanner.Failed()))
	if err != nil {
		if errors.Is(err, stats.ErrNoRecords) {
			logger.Errorf("no records parsed from %s", last.Name)
			return nil
		}
		return err
	}

	top := report.Top(urlStats, cfg.ReportSize)
	renderer := &report.Renderer{TemplatePath: cfg.TemplatePath, Log: logger}
	if err := renderer.WriteHTML(reportPath, top); err != nil {
		return err
	}
	logger.Infof("report written to %s (%d urls, %d records)", reportPath, len(urlStats), totals.Requests)

	if cfg.Chart {
		chartPath := filepath.Join(cfg.ReportDir, report.ChartFilename(last.Date))
		if err := renderer.WriteChart(chartPath, top); err != nil {
			logger.Warnf("chart rendering failed: %v", err)
		} else {
			logger.Infof("chart written to %s", chartPath)
		}
	}

	elapsed := time.Since(start)
	ratio := 0.0
	if scanner.Lines() > 0 {
		ratio = float64(scanner.Failed()) / float64(scanner.Lines())
	}

	rec := &storage.RunRecord{
		LogDate:     logDate,
		LogFile:     last.Name,
		ReportPath:  reportPath,
		Lines:       scanner.Lines(),
		ParseErrors: scanner.Failed(),
		Records:     totals.Requests,
		URLs:        len(urlStats),
		ErrorRatio:  ratio,
		DurationSec: elapsed.Seconds(),
		FinishedAt:  time.Now().Format(time.RFC3339),
	}
	if err := store.SaveRun(rec); err != nil {
		logger.Warnf("saving run history failed: %v", err)
	}

	m.Records.Set(float64(totals.Requests))
	m.URLs.Set(float64(len(urlStats)))
	m.ErrorRatio.Set(ratio)
	m.Duration.Set(elapsed.Seconds())
	m.LastSuccess.SetToCurrentTime()
	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warnf("metrics textfile write failed: %v", err)
		}
	}

	if usage, err := metrics.SelfUsage(); err == nil {
		logger.Infof("done in %s: rss=%.1fMB cpu=%.2fs",
			elapsed.Round(time.Millisecond),
			float64(usage.RSSBytes)/(1<<20),
			usage.CPUUser+usage.CPUSystem)
	} else {
		logger.Infof("done in %s", elapsed.Round(time.Millisecond))
	}
	return nil
}
