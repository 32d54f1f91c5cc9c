package warcfile

import (
	"fmt"

	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

type WriteErrorCause string

const (
	ErrCauseCreateFile   WriteErrorCause = "create file"
	ErrCauseWriteRecord  WriteErrorCause = "write record"
	ErrCauseShortPayload WriteErrorCause = "payload shorter than declared length"
	ErrCauseCloseFile    WriteErrorCause = "close file"
	ErrCauseBorrowWait   WriteErrorCause = "no idle writer within wait bound"
)

// WriteError is an I/O failure in the physical writer layer. Always
// recoverable: the owning transaction records it and the crawl continues.
type WriteError struct {
	Message string
	Cause   WriteErrorCause
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("warcfile error: %s: %s", e.Cause, e.Message)
}

func (e *WriteError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
