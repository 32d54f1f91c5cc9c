package composer

import (
	"bytes"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
)

// qualify derives a type-qualified secondary-record ID from the base ID.
// The primary record is never qualified; it keeps the raw base ID.
func (c *Composer) qualify(baseID string, value string) string {
	return c.generator.Qualify(baseID, record.QualifierKeyType, value)
}

func (c *Composer) writeRequest(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	fields *record.Fields,
) (string, error) {
	id := c.qualify(baseID, string(record.TypeRequest))
	rec := record.New(
		record.TypeRequest,
		id,
		tx.URL(),
		ts,
		record.HTTPRequestMimetype,
		fields,
		bytes.NewReader(tx.RecordedRequest()),
		tx.RequestSize(),
	)
	return id, w.WriteRequestRecord(rec)
}

func (c *Composer) writeResponse(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	mimetype string,
	fields *record.Fields,
) (string, error) {
	rec := record.New(
		record.TypeResponse,
		baseID,
		tx.URL(),
		ts,
		mimetype,
		fields,
		bytes.NewReader(tx.RecordedPayload()),
		tx.PayloadSize(),
	)
	return baseID, w.WriteResponseRecord(rec)
}

func (c *Composer) writeResource(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	mimetype string,
	fields *record.Fields,
) (string, error) {
	rec := record.New(
		record.TypeResource,
		baseID,
		tx.URL(),
		ts,
		mimetype,
		fields,
		bytes.NewReader(tx.RecordedPayload()),
		tx.PayloadSize(),
	)
	return baseID, w.WriteResourceRecord(rec)
}

// writeRevisitDigest emits an identical-digest revisit record. The payload
// never extends past the declared truncation length.
func (c *Composer) writeRevisitDigest(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	mimetype string,
	fields *record.Fields,
	payloadLength int64,
) (string, error) {
	fields.AddLabelValue(record.HeaderKeyProfile, record.ProfileRevisitIdenticalDigest)
	fields.AddLabelValue(record.HeaderKeyTruncated, record.TruncatedValueLength)
	rec := record.New(
		record.TypeRevisit,
		baseID,
		tx.URL(),
		ts,
		mimetype,
		fields,
		bytes.NewReader(tx.RecordedPayload()),
		payloadLength,
	)
	return baseID, w.WriteRevisitRecord(rec)
}

// writeRevisitNotModified emits a server-not-modified revisit record,
// carrying just enough context to understand the basis of the
// not-modified: the prior ETag and Last-Modified values when present.
// The payload is truncated to zero.
func (c *Composer) writeRevisitNotModified(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	fields *record.Fields,
) (string, error) {
	fields.AddLabelValue(record.HeaderKeyProfile, record.ProfileRevisitNotModified)
	fields.AddLabelValueIfNotBlank(record.HeaderKeyEtag, tx.PriorEtag())
	fields.AddLabelValueIfNotBlank(record.HeaderKeyLastModified, tx.PriorLastModified())
	fields.AddLabelValue(record.HeaderKeyTruncated, record.TruncatedValueLength)
	rec := record.New(
		record.TypeRevisit,
		baseID,
		tx.URL(),
		ts,
		"",
		fields,
		bytes.NewReader(nil),
		0,
	)
	return baseID, w.WriteRevisitRecord(rec)
}

func (c *Composer) writeMetadata(
	w warcfile.Handle,
	tx *transaction.Transaction,
	baseID string,
	ts time.Time,
	fields *record.Fields,
) (string, error) {
	id := c.qualify(baseID, string(record.TypeMetadata))
	body := assembleMetadataBlock(tx).Bytes()
	rec := record.New(
		record.TypeMetadata,
		id,
		tx.URL(),
		ts,
		record.FieldsMimetype,
		fields,
		bytes.NewReader(body),
		int64(len(body)),
	)
	return id, w.WriteMetadataRecord(rec)
}
