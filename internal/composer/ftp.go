package composer

import (
	"bytes"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/revisit"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
)

// ftpControlQualifier keeps the control transcript's derived ID distinct
// from the trailing metadata record's under a deterministic qualify.
const ftpControlQualifier = "ftp-control-conversation"

// writeFTPRecords emits the record set of an ftp transaction. The control
// transcript is written first as a metadata record and becomes the
// reference point: the payload record (resource or revisit) links to it.
// The optional trailing metadata record links to the payload record, or
// to the transcript when nothing was recorded.
func writeFTPRecords(c *Composer, w warcfile.Handle, tx *transaction.Transaction, baseID string, ts time.Time) error {
	fields := record.NewFields()
	fields.AddLabelValueIfNotBlank(record.HeaderKeyIP, tx.ServerIP())

	controlID := c.qualify(baseID, ftpControlQualifier)
	transcript := []byte(tx.FTPControlConversation())
	controlRec := record.New(
		record.TypeMetadata,
		controlID,
		tx.URL(),
		ts,
		record.FTPControlConversationMimetype,
		fields,
		bytes.NewReader(transcript),
		int64(len(transcript)),
	)
	if err := w.WriteMetadataRecord(controlRec); err != nil {
		return err
	}

	rid := controlID
	if tx.HasRecorder() {
		decision := revisit.Decide(tx, c.revisitOptions())
		fields = record.NewFields()
		if decision.Kind() == revisit.KindIdenticalDigest {
			if tx.ContentDigest() != "" {
				fields.AddLabelValue(record.HeaderKeyPayloadDigest, tx.ContentDigest())
			}
			fields.AddLabelValue(record.HeaderKeyConcurrentTo, record.BracketedID(controlID))
			var err error
			rid, err = c.writeRevisitDigest(w, tx, baseID, ts, "", fields, decision.PayloadLength())
			if err != nil {
				return err
			}
		} else {
			if v := decision.Truncation(); v != "" {
				fields.AddLabelValue(record.HeaderKeyTruncated, v)
			}
			if tx.ContentDigest() != "" {
				fields.AddLabelValue(record.HeaderKeyPayloadDigest, tx.ContentDigest())
			}
			fields.AddLabelValue(record.HeaderKeyConcurrentTo, record.BracketedID(controlID))
			var err error
			rid, err = c.writeResource(w, tx, baseID, ts, tx.ContentType(), fields)
			if err != nil {
				return err
			}
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
