package composer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/config"
	"github.com/rohmanhakim/warc-archiver/internal/metadata"
	"github.com/rohmanhakim/warc-archiver/internal/recordid"
	"github.com/rohmanhakim/warc-archiver/internal/revisit"
	"github.com/rohmanhakim/warc-archiver/internal/stats"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

/*
Composer turns completed fetch transactions into archival records.

Responsibilities:
- Decide which typed records a transaction produces (scheme dispatch,
  revisit state machine)
- Build record-ID linkage between the primary record and its secondaries
- Drive records through a borrowed pool handle in fixed order
- Merge per-transaction counters into process-wide statistics

Control-flow guarantees:
- One composition call per transaction, synchronous, no background tasks
- No internal retries; a failed write is surfaced once and retry, if any,
  is the caller's concern on a fresh borrow
- A borrowed handle is returned or invalidated exactly once per call
- No failure in this component is process-fatal

Metadata emission is observational only and MUST NOT influence
composition, rotation, or stats.
*/
type Composer struct {
	cfg        config.Config
	pool       warcfile.WriterPool
	generator  recordid.Generator
	aggregator *stats.Aggregator
	sink       metadata.MetadataSink
	logger     *slog.Logger

	builders map[string]builderFunc
}

// builderFunc assembles and writes the record set of one transaction for
// one scheme. The handle is already borrowed, rotation-checked, and
// temp-stat-reset when a builder runs.
type builderFunc func(c *Composer, w warcfile.Handle, tx *transaction.Transaction, baseID string, ts time.Time) error

func New(
	cfg config.Config,
	pool warcfile.WriterPool,
	generator recordid.Generator,
	aggregator *stats.Aggregator,
	sink metadata.MetadataSink,
) *Composer {
	c := &Composer{
		cfg:        cfg,
		pool:       pool,
		generator:  generator,
		aggregator: aggregator,
		sink:       sink,
		logger:     slog.Default().With("component", "composer"),
	}
	c.builders = map[string]builderFunc{
		"http":  writeHTTPRecords,
		"https": writeHTTPRecords,
		"dns":   writeDNSRecords,
		"ftp":   writeFTPRecords,
		"whois": writeWhoisRecords,
	}
	return c
}

// RegisterScheme installs (or replaces) the builder for a scheme, enabling
// extension without touching the dispatch table's callers.
func (c *Composer) RegisterScheme(scheme string, build builderFunc) {
	c.builders[strings.ToLower(scheme)] = build
}

// Process is the per-transaction entry point. Transactions without a
// successful fetch are skipped; a skipped duplicate still copies the prior
// write tag forward so recrawl history stays traceable.
func (c *Composer) Process(tx *transaction.Transaction) Result {
	if c.shouldWrite(tx) {
		result, err := c.Write(tx.Scheme(), tx)
		if err != nil {
			// already on the transaction's non-fatal list; keep crawling
			return ResultProceed
		}
		return result
	}
	c.copyForwardWriteTagIfDupe(tx)
	return ResultProceed
}

// shouldWrite accepts only transactions whose fetch concluded with a
// positive status; failed fetches produce no records.
func (c *Composer) shouldWrite(tx *transaction.Transaction) bool {
	return tx.FetchStatus() > 0
}

// copyForwardWriteTagIfDupe carries the newest prior write tag onto the
// current history entry for unwritten duplicate-digest transactions.
func (c *Composer) copyForwardWriteTagIfDupe(tx *transaction.Transaction) {
	if !tx.HasIdenticalDigest() {
		return
	}
	if tag, ok := tx.PriorWriteTag(); ok {
		tx.TagLatestHistory(tag)
	}
}

// Write composes and emits the record set for one transaction. The
// returned error, when non-nil, is the transaction's WriteFailure; it has
// already been recorded on the transaction and in the metadata sink.
func (c *Composer) Write(scheme string, tx *transaction.Transaction) (Result, failure.ClassifiedError) {
	build, ok := c.builders[strings.ToLower(scheme)]
	if !ok {
		c.logger.Warn("no builder for scheme", "scheme", scheme, "url", tx.URL())
		c.sink.RecordError(
			time.Now(),
			"composer",
			"Composer.Write",
			metadata.CauseUnsupportedScheme,
			"no builder for scheme",
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrScheme, scheme),
				metadata.NewAttr(metadata.AttrURL, tx.URL()),
			},
		)
		return ResultProceed, nil
	}

	w, berr := c.pool.Borrow()
	if berr != nil {
		tx.AddNonFatalFailure(berr)
		c.sink.RecordError(
			time.Now(),
			"composer",
			"Pool.Borrow",
			metadata.CausePoolExhausted,
			berr.Error(),
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, tx.URL())},
		)
		return ResultProceed, &WriteFailure{URL: tx.URL(), Err: berr}
	}

	position := w.Position()
	if err := w.CheckSize(); err != nil {
		return c.failWrite(tx, w, err)
	}
	if w.Position() != position {
		// A rotation (or first open) happened between the baseline read
		// and here: attribute the delta so bytes belonging to a file
		// closed mid-transaction are not lost, then rebase.
		c.aggregator.AddTotalBytesWritten(w.Position() - position)
		position = w.Position()
	}

	// Temp stats must reflect only this transaction's records; they are
	// merged into totals after the builder runs.
	w.ResetTmpStats()

	baseID, err := c.generator.NewID()
	if err != nil {
		return c.failWrite(tx, w, err)
	}

	if err := build(c, w, tx, baseID, tx.FetchBegin()); err != nil {
		return c.failWrite(tx, w, err)
	}

	tmp := w.TmpStats()
	if tmp.Get(stats.TypeTotals, stats.MetricNumRecords) > 0 {
		c.aggregator.Merge(tmp)
		c.aggregator.IncTransactionsWritten()
		c.sink.RecordWrite(
			tx.URL(),
			tmp.Get(stats.TypeTotals, stats.MetricNumRecords),
			tmp.Get(stats.TypeTotals, stats.MetricSizeOnDisk),
			w.CurrentName(),
		)
	}
	c.aggregator.AddTotalBytesWritten(w.Position() - position)

	filename := w.CurrentName()
	c.pool.Return(w)

	if filename != "" {
		tx.SetWriteFilename(filename)
		tx.TagLatestHistory(filename)
	}
	return c.checkBytesWritten(), nil
}

// failWrite is the single failure path: the handle's file is invalidated
// (never returned a second time), the failure lands on the transaction,
// and the crawl proceeds.
func (c *Composer) failWrite(tx *transaction.Transaction, w warcfile.Handle, err error) (Result, failure.ClassifiedError) {
	c.pool.Invalidate(w)
	wf := &WriteFailure{URL: tx.URL(), Err: err}
	tx.AddNonFatalFailure(wf)
	c.sink.RecordError(
		time.Now(),
		"composer",
		"Composer.Write",
		mapWriteFailureToMetadataCause(wf),
		wf.Error(),
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, tx.URL())},
	)
	return ResultProceed, wf
}

func (c *Composer) checkBytesWritten() Result {
	max := c.cfg.MaxTotalBytes()
	if max > 0 && c.aggregator.TotalBytesWritten() >= max {
		return ResultFinish
	}
	return ResultProceed
}

func (c *Composer) revisitOptions() revisit.Options {
	return revisit.Options{
		IdenticalDigestEnabled: c.cfg.WriteRevisitForIdenticalDigests(),
		NotModifiedEnabled:     c.cfg.WriteRevisitForNotModified(),
	}
}
