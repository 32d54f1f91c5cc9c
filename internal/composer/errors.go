package composer

import (
	"fmt"

	"github.com/rohmanhakim/warc-archiver/internal/metadata"
	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

// WriteFailure is an I/O failure while emitting the records of one
// transaction. Composition for that transaction aborts partway; the
// failure lands on its non-fatal list and the crawl continues.
type WriteFailure struct {
	URL string
	Err error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("failed write of records for %s: %v", e.URL, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

func (e *WriteFailure) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// mapWriteFailureToMetadataCause maps composer-local error semantics to
// the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used to derive
// control-flow decisions.
func mapWriteFailureToMetadataCause(err *WriteFailure) metadata.ErrorCause {
	if err == nil {
		return metadata.CauseUnknown
	}
	return metadata.CauseStorageFailure
}
