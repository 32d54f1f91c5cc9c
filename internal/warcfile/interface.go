package warcfile

import (
	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/stats"
	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

// Handle is one physical output writer, exclusively owned by a single
// transaction between borrow and return/invalidate. Position reads and
// rotation checks happen under that exclusive ownership; the handle does
// no locking of its own.
type Handle interface {
	// Position is the current byte offset in the underlying file
	// (compressed bytes when compression is on).
	Position() int64
	// CheckSize opens the first file on demand and rotates to a new file
	// once the current one has grown past the configured maximum.
	CheckSize() error
	// CurrentName is the base filename in use, stripped of the
	// in-progress suffix.
	CurrentName() string

	ResetTmpStats()
	TmpStats() stats.Snapshot

	WriteRequestRecord(rec record.Record) error
	WriteResponseRecord(rec record.Record) error
	WriteResourceRecord(rec record.Record) error
	WriteRevisitRecord(rec record.Record) error
	WriteMetadataRecord(rec record.Record) error
}

// WriterPool lends handles to transactions. Every successful Borrow is
// balanced by exactly one Return or Invalidate.
type WriterPool interface {
	Borrow() (Handle, failure.ClassifiedError)
	Return(h Handle)
	Invalidate(h Handle)
}
