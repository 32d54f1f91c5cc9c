package stats

import (
	"sync"
	"sync/atomic"
)

// key is the flat composite identifier replacing a nested map-of-maps:
// one atomic counter per (record-type, metric) pair.
type key struct {
	recordType string
	metric     string
}

/*
Aggregator holds process-lifetime write statistics, merged additively from
per-transaction snapshots. Counters are never decremented.

Concurrency: create-if-absent plus atomic add, no global lock. Any number
of transactions may merge concurrently; no caller observes a lost update.
One Aggregator is owned by one composer instance; tests construct their
own isolated instances.
*/
type Aggregator struct {
	counters sync.Map // key → *atomic.Int64

	transactionsWritten atomic.Int64
	totalBytesWritten   atomic.Int64
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) counter(recordType string, metric string) *atomic.Int64 {
	k := key{recordType: recordType, metric: metric}
	if c, ok := a.counters.Load(k); ok {
		return c.(*atomic.Int64)
	}
	c, _ := a.counters.LoadOrStore(k, new(atomic.Int64))
	return c.(*atomic.Int64)
}

// Add atomically adds delta to one counter, initializing it on first sight.
func (a *Aggregator) Add(recordType string, metric string, delta int64) {
	a.counter(recordType, metric).Add(delta)
}

// Merge folds a transaction's temporary counters into the process totals.
func (a *Aggregator) Merge(snap Snapshot) {
	for recordType, row := range snap {
		for metric, delta := range row {
			a.Add(recordType, metric, delta)
		}
	}
}

// Get reads one counter; never-written counters read zero.
func (a *Aggregator) Get(recordType string, metric string) int64 {
	if c, ok := a.counters.Load(key{recordType: recordType, metric: metric}); ok {
		return c.(*atomic.Int64).Load()
	}
	return 0
}

// Snapshot materializes the table back into the record-type → metric →
// count shape for reporting.
func (a *Aggregator) Snapshot() Snapshot {
	snap := NewSnapshot()
	a.counters.Range(func(k any, v any) bool {
		ck := k.(key)
		snap.Add(ck.recordType, ck.metric, v.(*atomic.Int64).Load())
		return true
	})
	return snap
}

// IncTransactionsWritten bumps the once-per-transaction counter. Called
// only for transactions that produced at least one record.
func (a *Aggregator) IncTransactionsWritten() {
	a.transactionsWritten.Add(1)
}

func (a *Aggregator) TransactionsWritten() int64 {
	return a.transactionsWritten.Load()
}

// AddTotalBytesWritten adds an observed on-disk position delta to the
// running total. Deltas spanning a mid-transaction rotation are attributed
// whole; there is no per-file decomposition.
func (a *Aggregator) AddTotalBytesWritten(delta int64) {
	a.totalBytesWritten.Add(delta)
}

func (a *Aggregator) TotalBytesWritten() int64 {
	return a.totalBytesWritten.Load()
}
