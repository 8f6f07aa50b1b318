// Package metrics keeps operation counters in an embedded tstorage database.
package metrics

import (
	"errors"
	"os"
	"path"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
	// last timestamp handed out; points of one metric must be strictly increasing
	last int64
)

// InitMetrics opens the storage under workdir/data/metrics. An empty workdir
// keeps the points in memory only.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		return nil
	}
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Nanoseconds),
		tstorage.WithPartitionDuration(time.Hour),
		tstorage.WithRetention(7 * 24 * time.Hour),
	}
	if workdir != "" {
		dir := path.Join(workdir, "data", "metrics")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		opts = append(opts, tstorage.WithDataPath(dir))
	}
	s, err := tstorage.NewStorage(opts...)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Label builds a metric label
func Label(name, value string) tstorage.Label {
	return tstorage.Label{Name: name, Value: value}
}

// Inc records one occurrence of name. It is a no-op before InitMetrics.
func Inc(name string, labels ...tstorage.Label) {
	insert(name, 1, labels)
}

// SetGauge records the current value of name
func SetGauge(name string, value int64, labels ...tstorage.Label) {
	insert(name, float64(value), labels)
}

func insert(name string, value float64, labels []tstorage.Label) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	ts := time.Now().UnixNano()
	if ts <= last {
		ts = last + 1
	}
	last = ts
	_ = storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		Labels:    labels,
		DataPoint: tstorage.DataPoint{Timestamp: ts, Value: value},
	}})
}

// Sum adds up the points of name recorded within the last window
func Sum(name string, window time.Duration, labels ...tstorage.Label) (float64, error) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return 0, nil
	}
	now := time.Now().UnixNano()
	end := now
	if last > end {
		end = last
	}
	points, err := storage.Select(name, labels, now-int64(window), end+1)
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total, nil
}

// Close flushes and closes the storage
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
