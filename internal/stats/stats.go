package stats

import (
	"errors"
	"sort"

	"log-report/internal/parser"
)

// RecordSource is the pull side of the streaming file parser.
type RecordSource interface {
	Scan() bool
	Record() parser.Record
	Err() error
}

// URLStat is the finalized per-URL summary. JSON keys are the report's
// output schema; percentages are 0-100.
type URLStat struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}

// Totals carries the grand totals of one aggregation run.
type Totals struct {
	Requests int
	TimeSum  float64
}

// ErrNoRecords is reported when the source yields nothing at all, so the
// caller can skip the report instead of dividing by zero.
var ErrNoRecords = errors.New("no records to aggregate")

type accumulator struct {
	url   string
	times []float64
}

// Aggregate drains the source and finalizes per-URL statistics. This is
// the single point in the pipeline where per-URL timings are materialized;
// percentages and medians need the complete value set. Output is in URL
// order so that downstream ranking breaks time_sum ties the same way on
// every run; the ranking itself is imposed downstream.
func Aggregate(src RecordSource) ([]URLStat, Totals, error) {
	urls := make(map[string]*accumulator)
	var totals Totals

	for src.Scan() {
		rec := src.Record()
		totals.Requests++
		totals.TimeSum += rec.RequestTime

		acc := urls[rec.URL]
		if acc == nil {
			acc = &accumulator{url: rec.URL}
			urls[rec.URL] = acc
		}
		acc.times = append(acc.times, rec.RequestTime)
	}
	if err := src.Err(); err != nil {
		return nil, totals, err
	}
	if totals.Requests == 0 {
		return nil, totals, ErrNoRecords
	}

	keys := make([]string, 0, len(urls))
	for url := range urls {
		keys = append(keys, url)
	}
	sort.Strings(keys)

	out := make([]URLStat, 0, len(urls))
	for _, url := range keys {
		acc := urls[url]
		var sum, max float64
		for _, t := range acc.times {
			sum += t
			if t > max {
				max = t
			}
		}
		st := URLStat{
			URL:       acc.url,
			Count:     len(acc.times),
			CountPerc: float64(len(acc.times)) * 100 / float64(totals.Requests),
			TimeSum:   sum,
			TimeAvg:   sum / float64(len(acc.times)),
			TimeMax:   max,
			TimeMed:   Median(acc.times),
		}
		if totals.TimeSum > 0 {
			st.TimePerc = sum * 100 / totals.TimeSum
		}
		out = append(out, st)
	}
	return out, totals, nil
}

// Median returns the middle value of the sorted input for odd lengths and
// the mean of the two middle values for even lengths. The input slice is
// not modified. Median of an empty slice is 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
