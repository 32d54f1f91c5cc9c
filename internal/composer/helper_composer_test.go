package composer_test

import (
	"io"
	"testing"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/config"
	"github.com/rohmanhakim/warc-archiver/internal/metadata"
	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/stats"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

// mockRecordSize is the simulated on-disk footprint of every record the
// handle mock accepts.
const mockRecordSize = int64(100)

// capturedRecord keeps a written record plus its fully drained payload, so
// assertions can inspect bodies after the one-shot reader is consumed.
type capturedRecord struct {
	rec  record.Record
	body []byte
}

func (c capturedRecord) Type() record.Type      { return c.rec.Type() }
func (c capturedRecord) ID() string             { return c.rec.ID() }
func (c capturedRecord) Fields() *record.Fields { return c.rec.NamedFields() }

// handleMock simulates a borrowed writer handle: it captures records in
// memory, advances a fake file position, and accumulates temp stats the
// way the real writer does.
type handleMock struct {
	t *testing.T

	records     []capturedRecord
	position    int64
	currentName string
	tmpStats    stats.Snapshot

	// growOnCheckSize simulates a rotation or first open: the next
	// CheckSize call advances the position by this much, once.
	growOnCheckSize int64
	checkSizeErr    error
	writeErr        error
}

func newHandleMock(t *testing.T) *handleMock {
	return &handleMock{
		t:           t,
		currentName: "TEST-20260823000000000-00001-testhost.warc",
		tmpStats:    stats.NewSnapshot(),
	}
}

func (h *handleMock) Position() int64 {
	return h.position
}

func (h *handleMock) CheckSize() error {
	if h.checkSizeErr != nil {
		return h.checkSizeErr
	}
	h.position += h.growOnCheckSize
	h.growOnCheckSize = 0
	return nil
}

func (h *handleMock) CurrentName() string {
	return h.currentName
}

func (h *handleMock) ResetTmpStats() {
	h.tmpStats = stats.NewSnapshot()
}

func (h *handleMock) TmpStats() stats.Snapshot {
	return h.tmpStats
}

func (h *handleMock) WriteRequestRecord(rec record.Record) error  { return h.accept(rec) }
func (h *handleMock) WriteResponseRecord(rec record.Record) error { return h.accept(rec) }
func (h *handleMock) WriteResourceRecord(rec record.Record) error { return h.accept(rec) }
func (h *handleMock) WriteRevisitRecord(rec record.Record) error  { return h.accept(rec) }
func (h *handleMock) WriteMetadataRecord(rec record.Record) error { return h.accept(rec) }

func (h *handleMock) accept(rec record.Record) error {
	if h.writeErr != nil {
		return h.writeErr
	}
	var body []byte
	if rec.Payload() != nil && rec.Length() > 0 {
		body = make([]byte, rec.Length())
		if _, err := io.ReadFull(rec.Payload(), body); err != nil {
			h.t.Fatalf("draining captured payload: %v", err)
		}
	}
	h.records = append(h.records, capturedRecord{rec: rec, body: body})
	h.position += mockRecordSize
	for _, row := range []string{string(rec.Type()), stats.TypeTotals} {
		h.tmpStats.Add(row, stats.MetricNumRecords, 1)
		h.tmpStats.Add(row, stats.MetricContentBytes, rec.Length())
		h.tmpStats.Add(row, stats.MetricTotalBytes, rec.Length()+50)
		h.tmpStats.Add(row, stats.MetricSizeOnDisk, mockRecordSize)
	}
	return nil
}

// recordOfType returns the first captured record of the given type.
func (h *handleMock) recordOfType(t *testing.T, rt record.Type) capturedRecord {
	t.Helper()
	for _, c := range h.records {
		if c.Type() == rt {
			return c
		}
	}
	t.Fatalf("no captured record of type %q", rt)
	return capturedRecord{}
}

// poolMock lends a single handle mock and counts the loan outcomes.
type poolMock struct {
	handle      *handleMock
	borrowErr   failure.ClassifiedError
	borrowed    int
	returned    int
	invalidated int
}

func (p *poolMock) Borrow() (warcfile.Handle, failure.ClassifiedError) {
	if p.borrowErr != nil {
		return nil, p.borrowErr
	}
	p.borrowed++
	return p.handle, nil
}

func (p *poolMock) Return(h warcfile.Handle) {
	p.returned++
}

func (p *poolMock) Invalidate(h warcfile.Handle) {
	p.invalidated++
}

// metadataSinkMock is a capturing mock for metadata.MetadataSink.
type metadataSinkMock struct {
	errorCauses []metadata.ErrorCause
	errorAttrs  [][]metadata.Attribute

	writeCalled   bool
	writeURL      string
	writeCount    int64
	writeFilename string
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorCauses = append(m.errorCauses, cause)
	m.errorAttrs = append(m.errorAttrs, attrs)
}

func (m *metadataSinkMock) RecordWrite(
	url string,
	recordCount int64,
	sizeOnDisk int64,
	filename string,
) {
	m.writeCalled = true
	m.writeURL = url
	m.writeCount = recordCount
	m.writeFilename = filename
}

func (m *metadataSinkMock) hasErrorCause(cause metadata.ErrorCause) bool {
	for _, c := range m.errorCauses {
		if c == cause {
			return true
		}
	}
	return false
}

// stubGenerator issues a fixed base ID and readable qualified IDs, so
// linkage assertions do not depend on UUID internals.
type stubGenerator struct{}

func (stubGenerator) NewID() (string, error) {
	return "urn:uuid:00000000-0000-4000-8000-000000000001", nil
}

func (stubGenerator) Qualify(base string, key string, value string) string {
	return base + "/" + key + ":" + value
}

// defaultTestConfig builds a production-default config for composer tests.
func defaultTestConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.WithDefault().Build()
	if err != nil {
		t.Fatalf("building default config: %v", err)
	}
	return cfg
}

func defaultConfigWithoutMetadata() (config.Config, error) {
	return config.WithDefault().WithWriteMetadata(false).Build()
}
