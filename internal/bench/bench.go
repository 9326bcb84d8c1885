// Package bench drives repeated independent fetches against a single
// URL and aggregates their latencies. Every request runs its own
// complete transaction over its own connection; nothing is pooled or
// reused between them.
package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
)

// Histogram range: 1 microsecond to 1 minute, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = int64(time.Minute / time.Microsecond)
	histogramSigFigs = 3
)

// Options configures a benchmark run
type Options struct {
	Requests    int
	Concurrency int
}

// Runner executes a benchmark against one URL
type Runner struct {
	client *http.Client
	opts   Options
}

// NewRunner creates a runner using the given client
func NewRunner(client *http.Client, opts Options) *Runner {
	if opts.Requests < 1 {
		opts.Requests = 1
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Concurrency > opts.Requests {
		opts.Concurrency = opts.Requests
	}
	return &Runner{client: client, opts: opts}
}

// Run fires the configured number of fetches and collects a latency
// summary. Failed transactions count toward Failures and do not record
// a latency; the run itself only fails when the context does.
func (r *Runner) Run(ctx context.Context, method http.Method, url string, body interface{}) (*Summary, error) {
	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)
	var histMu sync.Mutex

	var successes, failures atomic.Int64
	var next atomic.Int64

	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if next.Add(1) > int64(r.opts.Requests) {
					return
				}
				if ctx.Err() != nil {
					return
				}

				began := time.Now()
				resp, err := r.client.Fetch(ctx, method, url, body)
				elapsed := time.Since(began)

				if err != nil || !resp.IsSuccess() {
					failures.Add(1)
					continue
				}
				successes.Add(1)

				histMu.Lock()
				hist.RecordValue(elapsed.Microseconds())
				histMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Summary{
		Requests:  successes.Load() + failures.Load(),
		Successes: successes.Load(),
		Failures:  failures.Load(),
		Duration:  time.Since(start),
		Min:       time.Duration(hist.Min()) * time.Microsecond,
		Mean:      time.Duration(hist.Mean()) * time.Microsecond,
		P50:       time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:       time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:       time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
		Max:       time.Duration(hist.Max()) * time.Microsecond,
	}, nil
}

// Summary aggregates the outcome of a benchmark run
type Summary struct {
	Requests  int64
	Successes int64
	Failures  int64
	Duration  time.Duration
	Min       time.Duration
	Mean      time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	Max       time.Duration
}

// Throughput returns successful requests per second over the whole run
func (s *Summary) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Successes) / s.Duration.Seconds()
}
