package composer

import (
	"strconv"
	"strings"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
	"github.com/rohmanhakim/warc-archiver/pkg/timeutil"
)

// assembleMetadataBlock builds the named-fields body of a transaction's
// metadata record. Field order is part of the contract.
//
// A seed transaction carries only the "seed" marker; the force-fetch,
// via, hopsFromSeed, and sourceTag fields are independent of each other
// and all emitted when applicable.
func assembleMetadataBlock(tx *transaction.Transaction) *record.Fields {
	r := record.NewFields()
	if tx.IsSeed() {
		r.AddLabel("seed")
	} else {
		if tx.ForceFetch() {
			r.AddLabel("force-fetch")
		}
		r.AddLabelValueIfNotBlank("via", tx.Via())
		r.AddLabelValueIfNotBlank("hopsFromSeed", tx.PathFromSeed())
		if tx.SourceTag() != "" {
			r.AddLabelValue("sourceTag", tx.SourceTag())
		}
	}

	if d := timeutil.FetchDurationMs(tx.FetchBegin(), tx.FetchCompleted()); d > -1 {
		r.AddLabelValue("fetchTimeMs", strconv.FormatInt(d, 10))
	}

	if tx.FTPFetchStatus() != "" {
		r.AddLabelValue("ftpFetchStatus", tx.FTPFetchStatus())
	}

	if tx.LinkExtractionCharset() != "" {
		r.AddLabelValue("charsetForLinkExtraction", tx.LinkExtractionCharset())
	}

	for _, annotation := range tx.Annotations() {
		if strings.HasPrefix(annotation, transaction.AnnotationPrefixUsingCharset) ||
			strings.HasPrefix(annotation, transaction.AnnotationPrefixInconsistentCharset) {
			kv := strings.SplitN(annotation, ":", 2)
			if len(kv) == 2 {
				r.AddLabelValue(kv[0], kv[1])
			}
		}
	}

	// Outlinks, though they are of limited use without anchor text.
	for _, link := range tx.Outlinks() {
		r.AddLabelValue("outlink", link)
	}

	return r
}
