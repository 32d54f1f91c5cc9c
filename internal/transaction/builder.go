package transaction

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/warc-archiver/pkg/hashutil"
)

// Builder assembles a Transaction the way upstream fetch stages would.
// Used at the fetch/composition boundary and by tests; the composer itself
// only ever sees the finished read-only Transaction.
type Builder struct {
	tx  *Transaction
	err error

	digestAlgo hashutil.HashAlgo
}

// New starts a builder for the given target URL. The scheme is derived
// from the URL and lowercased.
func New(rawURL string) *Builder {
	b := &Builder{
		tx:         &Transaction{url: rawURL},
		digestAlgo: hashutil.HashAlgoSHA256,
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		b.err = fmt.Errorf("%w: %v", ErrInvalidURL, err)
		return b
	}
	b.tx.scheme = strings.ToLower(parsed.Scheme)
	return b
}

func (b *Builder) WithRecordedRequest(data []byte) *Builder {
	b.tx.recordedRequest = data
	return b
}

func (b *Builder) WithRecordedPayload(data []byte) *Builder {
	b.tx.recordedPayload = data
	b.tx.hasRecorder = true
	return b
}

func (b *Builder) WithContentBegin(offset int64) *Builder {
	b.tx.contentBegin = offset
	return b
}

// WithContentDigest sets an upstream-computed digest-scheme string. When
// absent, Build computes one from the recorded payload.
func (b *Builder) WithContentDigest(digestScheme string) *Builder {
	b.tx.contentDigest = digestScheme
	return b
}

// WithDigestAlgo selects the algorithm Build uses when it has to compute
// the digest itself.
func (b *Builder) WithDigestAlgo(algo hashutil.HashAlgo) *Builder {
	b.digestAlgo = algo
	return b
}

func (b *Builder) WithContentType(contentType string) *Builder {
	b.tx.contentType = contentType
	return b
}

func (b *Builder) WithFetchStatus(status int) *Builder {
	b.tx.fetchStatus = status
	return b
}

func (b *Builder) WithFetchTimes(begin time.Time, completed time.Time) *Builder {
	b.tx.fetchBegin = begin
	b.tx.fetchCompleted = completed
	return b
}

func (b *Builder) WithIdenticalDigest(identical bool) *Builder {
	b.tx.identicalDigest = identical
	return b
}

func (b *Builder) WithPriorEtag(etag string) *Builder {
	b.tx.priorEtag = etag
	return b
}

func (b *Builder) WithPriorLastModified(lastModified string) *Builder {
	b.tx.priorLastModified = lastModified
	return b
}

func (b *Builder) WithSeed(seed bool) *Builder {
	b.tx.seed = seed
	return b
}

func (b *Builder) WithForceFetch(force bool) *Builder {
	b.tx.forceFetch = force
	return b
}

func (b *Builder) WithVia(via string) *Builder {
	b.tx.via = via
	return b
}

func (b *Builder) WithPathFromSeed(path string) *Builder {
	b.tx.pathFromSeed = path
	return b
}

func (b *Builder) WithSourceTag(tag string) *Builder {
	b.tx.sourceTag = tag
	return b
}

func (b *Builder) WithServerIP(ip string) *Builder {
	b.tx.serverIP = ip
	return b
}

func (b *Builder) WithDNSServerIP(ip string) *Builder {
	b.tx.dnsServerIP = ip
	return b
}

func (b *Builder) WithWhoisServerIP(ip string) *Builder {
	b.tx.whoisServerIP = ip
	return b
}

func (b *Builder) WithFTPControlConversation(transcript string) *Builder {
	b.tx.ftpControlConversation = transcript
	return b
}

func (b *Builder) WithFTPFetchStatus(status string) *Builder {
	b.tx.ftpFetchStatus = status
	return b
}

func (b *Builder) WithLinkExtractionCharset(charset string) *Builder {
	b.tx.linkExtractionCharset = charset
	return b
}

func (b *Builder) WithOutlinks(outlinks []string) *Builder {
	b.tx.outlinks = outlinks
	return b
}

func (b *Builder) WithAnnotations(annotations []string) *Builder {
	b.tx.annotations = annotations
	return b
}

func (b *Builder) WithFetchHistory(history []HistoryEntry) *Builder {
	b.tx.fetchHistory = history
	return b
}

func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.tx.scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, b.tx.url)
	}
	if b.tx.contentDigest == "" && b.tx.hasRecorder {
		digest, err := hashutil.DigestSchemeString(b.tx.recordedPayload, b.digestAlgo)
		if err != nil {
			return nil, fmt.Errorf("computing content digest: %w", err)
		}
		b.tx.contentDigest = digest
	}
	return b.tx, nil
}
