package metadata

import (
	"time"
)

/*
Recorder captures structured write events.
It must not:
- perform I/O decisions
- affect control flow
- impose a logging backend

Ordering guarantees:
- Events are recorded synchronously in the order they are received by a
  single worker.
- No global ordering across workers is guaranteed.
- Consumers MUST NOT assume total ordering across the crawl.

Metadata is write-only. No component may read metadata to influence
composition decisions.
*/
type Recorder struct {
	workerId string
}

func NewRecorder(workerId string) Recorder {
	return Recorder{
		workerId: workerId,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

// RecordWrite captures one transaction's successful record emission.
func (r *Recorder) RecordWrite(
	url string,
	recordCount int64,
	sizeOnDisk int64,
	filename string,
) {
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordWrite(
		url string,
		recordCount int64,
		sizeOnDisk int64,
		filename string,
	)
}

// NoopSink implements MetadataSink but does nothing. Callers (or tests)
// decide whether to inject Recorder or NoopSink; metadata stays orthogonal.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

func (n *NoopSink) RecordWrite(
	url string,
	recordCount int64,
	sizeOnDisk int64,
	filename string,
) {
}
