package stats_test

import (
	"sync"
	"testing"

	"github.com/rohmanhakim/warc-archiver/internal/stats"
)

// TestAggregator_AddAndGet tests counter initialization on first write
// and zero reads for untouched counters.
func TestAggregator_AddAndGet(t *testing.T) {
	agg := stats.NewAggregator()

	agg.Add(stats.TypeResponse, stats.MetricNumRecords, 3)
	agg.Add(stats.TypeResponse, stats.MetricNumRecords, 2)

	if got := agg.Get(stats.TypeResponse, stats.MetricNumRecords); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := agg.Get(stats.TypeRevisit, stats.MetricNumRecords); got != 0 {
		t.Errorf("Expected zero read for untouched counter, got %d", got)
	}
}

// TestAggregator_MergeSnapshot tests that a per-transaction snapshot
// folds additively into the process totals.
func TestAggregator_MergeSnapshot(t *testing.T) {
	agg := stats.NewAggregator()
	agg.Add(stats.TypeTotals, stats.MetricContentBytes, 100)

	snap := stats.NewSnapshot()
	snap.Add(stats.TypeTotals, stats.MetricContentBytes, 250)
	snap.Add(stats.TypeResponse, stats.MetricNumRecords, 1)
	agg.Merge(snap)

	if got := agg.Get(stats.TypeTotals, stats.MetricContentBytes); got != 350 {
		t.Errorf("Expected 350 after merge, got %d", got)
	}
	if got := agg.Get(stats.TypeResponse, stats.MetricNumRecords); got != 1 {
		t.Errorf("Expected 1 after merge, got %d", got)
	}
}

// TestAggregator_ConcurrentMerges tests that no update is lost when many
// transactions merge at once.
func TestAggregator_ConcurrentMerges(t *testing.T) {
	// GIVEN 50 workers each merging 20 single-record snapshots
	agg := stats.NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				snap := stats.NewSnapshot()
				snap.Add(stats.TypeResponse, stats.MetricNumRecords, 1)
				snap.Add(stats.TypeTotals, stats.MetricSizeOnDisk, 10)
				agg.Merge(snap)
				agg.IncTransactionsWritten()
				agg.AddTotalBytesWritten(10)
			}
		}()
	}
	wg.Wait()

	// THEN every counter reflects exactly 1000 merges
	if got := agg.Get(stats.TypeResponse, stats.MetricNumRecords); got != 1000 {
		t.Errorf("Expected 1000 records, got %d", got)
	}
	if got := agg.Get(stats.TypeTotals, stats.MetricSizeOnDisk); got != 10000 {
		t.Errorf("Expected 10000 bytes, got %d", got)
	}
	if got := agg.TransactionsWritten(); got != 1000 {
		t.Errorf("Expected 1000 transactions, got %d", got)
	}
	if got := agg.TotalBytesWritten(); got != 10000 {
		t.Errorf("Expected 10000 total bytes, got %d", got)
	}
}

// TestAggregator_Snapshot tests the reporting shape round-trip.
func TestAggregator_Snapshot(t *testing.T) {
	agg := stats.NewAggregator()
	agg.Add(stats.TypeRevisit, stats.MetricNumRecords, 7)
	agg.Add(stats.TypeRevisit, stats.MetricContentBytes, 70)

	snap := agg.Snapshot()

	if got := snap.Get(stats.TypeRevisit, stats.MetricNumRecords); got != 7 {
		t.Errorf("Expected 7 in snapshot, got %d", got)
	}
	if got := snap.Get(stats.TypeRevisit, stats.MetricContentBytes); got != 70 {
		t.Errorf("Expected 70 in snapshot, got %d", got)
	}
}
