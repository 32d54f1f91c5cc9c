package composer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
)

// metadataBody processes a transaction and returns the body of its
// metadata record as a string, for assertions on the assembled block.
func metadataBody(t *testing.T, tx *transaction.Transaction) string {
	t.Helper()
	c, pool, _, _ := newComposerForTest(t, defaultTestConfig(t))
	c.Process(tx)
	meta := pool.handle.recordOfType(t, record.TypeMetadata)
	return string(meta.body)
}

// TestMetadataBlock_Seed verifies a seed transaction's block carries the
// bare seed marker and none of the discovery-path fields.
func TestMetadataBlock_Seed(t *testing.T) {
	tx, err := transaction.New("https://example.com/").
		WithRecordedPayload([]byte("HTTP/1.1 200 OK\r\n\r\nok")).
		WithFetchStatus(200).
		WithSeed(true).
		WithVia("https://ignored.example.com/").
		Build()
	require.NoError(t, err)

	body := metadataBody(t, tx)

	assert.Contains(t, body, "seed\r\n")
	assert.NotContains(t, body, "via:")
	assert.NotContains(t, body, "hopsFromSeed:")
}

// TestMetadataBlock_DiscoveredPage verifies the discovery-path fields of
// a non-seed transaction.
func TestMetadataBlock_DiscoveredPage(t *testing.T) {
	tx, err := transaction.New("https://example.com/deep/page").
		WithRecordedPayload([]byte("HTTP/1.1 200 OK\r\n\r\nok")).
		WithFetchStatus(200).
		WithForceFetch(true).
		WithVia("https://example.com/").
		WithPathFromSeed("LLL").
		WithSourceTag("https://example.com/").
		Build()
	require.NoError(t, err)

	body := metadataBody(t, tx)

	assert.Contains(t, body, "force-fetch\r\n")
	assert.Contains(t, body, "via: https://example.com/\r\n")
	assert.Contains(t, body, "hopsFromSeed: LLL\r\n")
	assert.Contains(t, body, "sourceTag: https://example.com/\r\n")
	assert.NotContains(t, body, "seed\r\n")
}

// TestMetadataBlock_FetchDuration verifies the elapsed fetch time lands
// in the block, and is omitted when either endpoint is unset.
func TestMetadataBlock_FetchDuration(t *testing.T) {
	begin := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	tx, err := transaction.New("https://example.com/").
		WithRecordedPayload([]byte("HTTP/1.1 200 OK\r\n\r\nok")).
		WithFetchStatus(200).
		WithFetchTimes(begin, begin.Add(1250*time.Millisecond)).
		Build()
	require.NoError(t, err)

	assert.Contains(t, metadataBody(t, tx), "fetchTimeMs: 1250\r\n")

	txNoTimes, err := transaction.New("https://example.com/").
		WithRecordedPayload([]byte("HTTP/1.1 200 OK\r\n\r\nok")).
		WithFetchStatus(200).
		Build()
	require.NoError(t, err)

	assert.NotContains(t, metadataBody(t, txNoTimes), "fetchTimeMs")
}

// TestMetadataBlock_CharsetAndOutlinks verifies the link-extraction
// charset, charset annotations, and repeated outlink fields.
func TestMetadataBlock_CharsetAndOutlinks(t *testing.T) {
	tx, err := transaction.New("https://example.com/").
		WithRecordedPayload([]byte("HTTP/1.1 200 OK\r\n\r\nok")).
		WithFetchStatus(200).
		WithLinkExtractionCharset("UTF-8").
		WithAnnotations([]string{
			"usingCharsetInHTML:ISO-8859-1",
			"lenTrunc",
		}).
		WithOutlinks([]string{
			"https://example.com/a",
			"https://example.com/b",
		}).
		Build()
	require.NoError(t, err)

	body := metadataBody(t, tx)

	assert.Contains(t, body, "charsetForLinkExtraction: UTF-8\r\n")
	assert.Contains(t, body, "usingCharsetInHTML: ISO-8859-1\r\n")
	// non-charset annotations never leak into the block
	assert.NotContains(t, body, "lenTrunc")
	assert.Contains(t, body, "outlink: https://example.com/a\r\n")
	assert.Contains(t, body, "outlink: https://example.com/b\r\n")
}
