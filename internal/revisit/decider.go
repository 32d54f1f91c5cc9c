package revisit

import (
	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
)

/*
Decide evaluates the revisit state machine for one HTTP-like transaction,
in fixed order:

 1. identical content digest + that mode enabled → identical-digest revisit,
    payload truncated to the content-begin offset (full recorded length when
    the offset is unknown);
 2. not-modified status + that mode enabled → not-modified revisit, payload
    forced to zero;
 3. otherwise a full capture, carrying at most one truncation marker chosen
    by strict precedence time > length > header.

Deterministic and side-effect-free except for the marker annotation it adds
to the transaction on the two revisit outcomes.
*/
func Decide(tx *transaction.Transaction, opts Options) Decision {
	if tx.HasIdenticalDigest() && opts.IdenticalDigestEnabled {
		length := tx.ContentBegin()
		if length <= 0 {
			length = tx.PayloadSize()
		}
		tx.AddAnnotation(transaction.AnnotationRevisitDigest)
		return Decision{
			kind:          KindIdenticalDigest,
			profile:       record.ProfileRevisitIdenticalDigest,
			payloadLength: length,
		}
	}

	if tx.FetchStatus() == StatusNotModified && opts.NotModifiedEnabled {
		tx.AddAnnotation(transaction.AnnotationRevisitNotModified)
		return Decision{
			kind:          KindNotModified,
			profile:       record.ProfileRevisitNotModified,
			payloadLength: 0,
		}
	}

	return Decision{
		kind:       KindFullCapture,
		truncation: truncationFor(tx),
	}
}

// truncationFor picks at most one truncated-field value, honoring the
// time > length > header precedence.
func truncationFor(tx *transaction.Transaction) string {
	switch {
	case tx.HasAnnotation(transaction.AnnotationTimeTruncated):
		return record.TruncatedValueTime
	case tx.HasAnnotation(transaction.AnnotationLengthTruncated):
		return record.TruncatedValueLength
	case tx.HasAnnotation(transaction.AnnotationHeaderTruncated):
		return record.TruncatedValueHead
	default:
		return ""
	}
}
