package composer

import (
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
)

// writeWhoisRecords emits the single response record of a whois
// transaction.
func writeWhoisRecords(c *Composer, w warcfile.Handle, tx *transaction.Transaction, baseID string, ts time.Time) error {
	fields := record.NewFields()
	fields.AddLabelValueIfNotBlank(record.HeaderKeyIP, tx.WhoisServerIP())
	_, err := c.writeResponse(w, tx, baseID, ts, tx.ContentType(), fields)
	return err
}
