// Package simulate drives the ingest API with synthetic readings from many devices at
// once and reports throughput.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"liyu1981.xyz/iot-dashboard/pkg/models"
	"liyu1981.xyz/iot-dashboard/pkg/seed"
)

// ErrRateLimited is returned by a Sender when the server refused a reading with 429 or
// ResourceExhausted.
var ErrRateLimited = errors.New("rate limited")

type Sender interface {
	Send(ctx context.Context, token string, input *models.ReadingInput) error
}

type Options struct {
	Tokens []string
	// Count is the number of readings each device sends.
	Count       int
	Concurrency int
	// Interval is the pause between two readings of one device.
	Interval time.Duration
	Rand     *rand.Rand
}

type Stats struct {
	Sent        int
	Accepted    int
	RateLimited int
	Failed      int
	Elapsed     time.Duration
}

func (s *Stats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Sent) / s.Elapsed.Seconds()
}

func (s *Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "sent %d readings in %.2f seconds, throughput=%.1f readings/second\n",
		s.Sent, s.Elapsed.Seconds(), s.Throughput())
	fmt.Fprintf(w, "accepted=%d rate_limited=%d failed=%d\n", s.Accepted, s.RateLimited, s.Failed)
}

var series = []seed.Series{seed.TemperatureSeries, seed.HumiditySeries, seed.PressureSeries}

// SeriesFor picks the curve device i reports, cycling through the three sensor kinds.
func SeriesFor(i int) seed.Series {
	return series[i%len(series)]
}

// Run sends opts.Count readings per token, at most opts.Concurrency devices at a time.
func Run(ctx context.Context, sender Sender, opts Options) (*Stats, error) {
	if len(opts.Tokens) == 0 {
		return nil, errors.New("no device tokens to simulate")
	}
	if opts.Count <= 0 {
		opts.Count = 1
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = len(opts.Tokens)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var (
		mu    sync.Mutex
		stats = &Stats{}
		rndMu sync.Mutex
		wg    sync.WaitGroup
		slots = make(chan struct{}, opts.Concurrency)
	)

	value := func(s seed.Series, i int) float64 {
		rndMu.Lock()
		defer rndMu.Unlock()
		return s.Value(i, opts.Rand)
	}

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.Sent++
		switch {
		case err == nil:
			stats.Accepted++
		case errors.Is(err, ErrRateLimited):
			stats.RateLimited++
		default:
			stats.Failed++
		}
	}

	startTime := time.Now()
	for i, token := range opts.Tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-slots }()

			s := SeriesFor(i)
			for n := range opts.Count {
				if ctx.Err() != nil {
					return
				}
				record(sender.Send(ctx, token, &models.ReadingInput{
					SensorType: string(s.SensorType),
					Value:      value(s, n),
					Unit:       s.Unit,
				}))
				if opts.Interval > 0 {
					time.Sleep(opts.Interval)
				}
			}
		}()
	}
	wg.Wait()
	stats.Elapsed = time.Since(startTime)

	return stats, ctx.Err()
}
