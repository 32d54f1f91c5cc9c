package transaction

import (
	"sync"
	"time"
)

// Annotation markers attached by upstream fetch stages and by the revisit
// decision. String values are part of the crawl-log vocabulary.
const (
	AnnotationTimeTruncated   = "timeTrunc"
	AnnotationLengthTruncated = "lenTrunc"
	AnnotationHeaderTruncated = "headerTrunc"

	AnnotationRevisitDigest      = "warcRevisit:digest"
	AnnotationRevisitNotModified = "warcRevisit:notModified"

	AnnotationPrefixUsingCharset        = "usingCharsetIn"
	AnnotationPrefixInconsistentCharset = "inconsistentCharsetIn"
)

// WriteTagKey is the fetch-history key under which the output filename of
// the most recent write is recorded.
const WriteTagKey = "write-tag"

// HistoryEntry is one fetch-history snapshot. Index 0 of a transaction's
// history is the most recent fetch.
type HistoryEntry map[string]string

/*
Transaction is the read-only view of one completed fetch handed to the
composition layer. Upstream stages populate it; the composer only adds
annotations, non-fatal failures, and the output filename produced by a
successful write.

Annotation and failure mutators are safe for the single-caller-per-
transaction model: one worker owns a transaction end to end.
*/
type Transaction struct {
	url    string
	scheme string

	recordedRequest []byte
	recordedPayload []byte
	contentBegin    int64
	hasRecorder     bool

	contentDigest string
	contentType   string
	fetchStatus   int

	fetchBegin     time.Time
	fetchCompleted time.Time

	identicalDigest   bool
	priorEtag         string
	priorLastModified string

	seed         bool
	forceFetch   bool
	via          string
	pathFromSeed string
	sourceTag    string

	serverIP               string
	dnsServerIP            string
	whoisServerIP          string
	ftpControlConversation string
	ftpFetchStatus         string

	linkExtractionCharset string
	outlinks              []string

	fetchHistory []HistoryEntry

	mu               sync.Mutex
	annotations      []string
	nonFatalFailures []error
	writeFilename    string
}

func (t *Transaction) URL() string            { return t.url }
func (t *Transaction) Scheme() string         { return t.scheme }
func (t *Transaction) RecordedRequest() []byte { return t.recordedRequest }
func (t *Transaction) RecordedPayload() []byte { return t.recordedPayload }

// RequestSize is the length of the recorded outbound byte stream.
func (t *Transaction) RequestSize() int64 { return int64(len(t.recordedRequest)) }

// PayloadSize is the length of the recorded inbound byte stream.
func (t *Transaction) PayloadSize() int64 { return int64(len(t.recordedPayload)) }

// ContentBegin is the offset where the response body starts inside the
// recorded payload, or 0 when unknown.
func (t *Transaction) ContentBegin() int64 { return t.contentBegin }

// HasRecorder reports whether any inbound bytes were captured. FTP
// transactions may carry only a control conversation and no payload.
func (t *Transaction) HasRecorder() bool { return t.hasRecorder }

// ContentDigest is the digest-scheme string of the payload ("sha256:..."),
// or empty when no digest was computed.
func (t *Transaction) ContentDigest() string { return t.contentDigest }

func (t *Transaction) ContentType() string      { return t.contentType }
func (t *Transaction) FetchStatus() int         { return t.fetchStatus }
func (t *Transaction) FetchBegin() time.Time    { return t.fetchBegin }
func (t *Transaction) FetchCompleted() time.Time { return t.fetchCompleted }

// HasIdenticalDigest reports whether a prior capture recorded the same
// content digest (the duplicate-digest flag set by recrawl history).
func (t *Transaction) HasIdenticalDigest() bool { return t.identicalDigest }

func (t *Transaction) PriorEtag() string         { return t.priorEtag }
func (t *Transaction) PriorLastModified() string { return t.priorLastModified }

func (t *Transaction) IsSeed() bool         { return t.seed }
func (t *Transaction) ForceFetch() bool     { return t.forceFetch }
func (t *Transaction) Via() string          { return t.via }
func (t *Transaction) PathFromSeed() string { return t.pathFromSeed }
func (t *Transaction) SourceTag() string    { return t.sourceTag }

func (t *Transaction) ServerIP() string               { return t.serverIP }
func (t *Transaction) DNSServerIP() string            { return t.dnsServerIP }
func (t *Transaction) WhoisServerIP() string          { return t.whoisServerIP }
func (t *Transaction) FTPControlConversation() string { return t.ftpControlConversation }
func (t *Transaction) FTPFetchStatus() string         { return t.ftpFetchStatus }

func (t *Transaction) LinkExtractionCharset() string { return t.linkExtractionCharset }
func (t *Transaction) Outlinks() []string            { return t.outlinks }

func (t *Transaction) FetchHistory() []HistoryEntry { return t.fetchHistory }

func (t *Transaction) AddAnnotation(annotation string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.annotations = append(t.annotations, annotation)
}

func (t *Transaction) Annotations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.annotations))
	copy(out, t.annotations)
	return out
}

func (t *Transaction) HasAnnotation(annotation string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, a := range t.annotations {
		if a == annotation {
			return true
		}
	}
	return false
}

func (t *Transaction) AddNonFatalFailure(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nonFatalFailures = append(t.nonFatalFailures, err)
}

func (t *Transaction) NonFatalFailures() []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]error, len(t.nonFatalFailures))
	copy(out, t.nonFatalFailures)
	return out
}

// SetWriteFilename records the output file this transaction's records
// landed in, stripped of any in-progress suffix.
func (t *Transaction) SetWriteFilename(filename string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeFilename = filename
}

func (t *Transaction) WriteFilename() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writeFilename
}

// TagLatestHistory stamps the most recent fetch-history entry with the
// write tag. No-op when the transaction carries no history.
func (t *Transaction) TagLatestHistory(filename string) {
	if len(t.fetchHistory) == 0 || t.fetchHistory[0] == nil {
		return
	}
	t.fetchHistory[0][WriteTagKey] = filename
}

// LatestWriteTag returns the write tag of the most recent history entry.
func (t *Transaction) LatestWriteTag() (string, bool) {
	if len(t.fetchHistory) == 0 || t.fetchHistory[0] == nil {
		return "", false
	}
	tag, ok := t.fetchHistory[0][WriteTagKey]
	return tag, ok
}

// PriorWriteTag returns the first write tag found in history entries older
// than the most recent one.
func (t *Transaction) PriorWriteTag() (string, bool) {
	for i := 1; i < len(t.fetchHistory); i++ {
		if t.fetchHistory[i] == nil {
			continue
		}
		if tag, ok := t.fetchHistory[i][WriteTagKey]; ok {
			return tag, true
		}
	}
	return "", false
}
