package composer

import (
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/revisit"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
)

// writeHTTPRecords emits the record set of an http/https transaction:
// the primary record selected by the revisit decision, then an optional
// request record and an optional metadata record, both linked to the
// primary via the concurrent-to field.
func writeHTTPRecords(c *Composer, w warcfile.Handle, tx *transaction.Transaction, baseID string, ts time.Time) error {
	fields := record.NewFields()
	if tx.ContentDigest() != "" {
		fields.AddLabelValue(record.HeaderKeyPayloadDigest, tx.ContentDigest())
	}
	fields.AddLabelValueIfNotBlank(record.HeaderKeyIP, tx.ServerIP())

	decision := revisit.Decide(tx, c.revisitOptions())

	var rid string
	var err error
	switch decision.Kind() {
	case revisit.KindIdenticalDigest:
		rid, err = c.writeRevisitDigest(w, tx, baseID, ts,
			record.HTTPResponseMimetype, fields, decision.PayloadLength())
	case revisit.KindNotModified:
		rid, err = c.writeRevisitNotModified(w, tx, baseID, ts, fields)
	default:
		if v := decision.Truncation(); v != "" {
			fields.AddLabelValue(record.HeaderKeyTruncated, v)
		}
		rid, err = c.writeResponse(w, tx, baseID, ts,
			record.HTTPResponseMimetype, fields)
	}
	if err != nil {
		return err
	}

	if c.cfg.WriteRequests() {
		fields = record.NewFields()
		fields.AddLabelValue(record.HeaderKeyConcurrentTo, record.BracketedID(rid))
		if _, err := c.writeRequest(w, tx, baseID, ts, fields); err != nil {
			return err
		}
	}
	if c.cfg.WriteMetadata() {
		fields = record.NewFields()
		fields.AddLabelValue(record.HeaderKeyConcurrentTo, record.BracketedID(rid))
		if _, err := c.writeMetadata(w, tx, baseID, ts, fields); err != nil {
			return err
		}
	}
	return nil
}
