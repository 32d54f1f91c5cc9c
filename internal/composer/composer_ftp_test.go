package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/transaction"
)

const ftpTranscript = "220 ready\r\nUSER anonymous\r\n331 send password\r\nPASS guest\r\n230 logged in\r\nRETR file.txt\r\n226 done\r\n"

func ftpTransaction(t *testing.T, withPayload bool) *transaction.Transaction {
	t.Helper()
	b := transaction.New("ftp://ftp.example.com/file.txt").
		WithFetchStatus(226).
		WithServerIP("203.0.113.9").
		WithFTPControlConversation(ftpTranscript).
		WithFTPFetchStatus("226")
	if withPayload {
		b = b.WithRecordedPayload([]byte("file contents\n"))
	}
	tx, err := b.Build()
	require.NoError(t, err)
	return tx
}

// TestWriteFTP_FullCapture verifies the three-record shape of an ftp
// fetch with a downloaded payload: control transcript first, then the
// resource linked to it, then trailing metadata linked to the resource.
func TestWriteFTP_FullCapture(t *testing.T) {
	c, pool, _, _ := newComposerForTest(t, defaultTestConfig(t))

	c.Process(ftpTransaction(t, true))

	require.Len(t, pool.handle.records, 3)

	control := pool.handle.records[0]
	assert.Equal(t, record.TypeMetadata, control.Type())
	assert.Equal(t, record.FTPControlConversationMimetype, control.rec.Mimetype())
	assert.Equal(t, ftpTranscript, string(control.body))
	assert.NotEqual(t, baseRecordID, control.ID())
	ip, ok := control.Fields().Get(record.HeaderKeyIP)
	require.True(t, ok)
	assert.Equal(t, "203.0.113.9", ip)

	resource := pool.handle.records[1]
	assert.Equal(t, record.TypeResource, resource.Type())
	assert.Equal(t, baseRecordID, resource.ID())
	assert.Equal(t, "file contents\n", string(resource.body))
	concurrentTo, ok := resource.Fields().Get(record.HeaderKeyConcurrentTo)
	require.True(t, ok)
	assert.Equal(t, record.BracketedID(control.ID()), concurrentTo)
	digest, ok := resource.Fields().Get(record.HeaderKeyPayloadDigest)
	require.True(t, ok)
	assert.NotEmpty(t, digest)

	meta := pool.handle.records[2]
	assert.Equal(t, record.TypeMetadata, meta.Type())
	assert.Equal(t, record.FieldsMimetype, meta.rec.Mimetype())
	concurrentTo, ok = meta.Fields().Get(record.HeaderKeyConcurrentTo)
	require.True(t, ok)
	assert.Equal(t, record.BracketedID(resource.ID()), concurrentTo)

	// the two metadata records must not collide on derived IDs
	assert.NotEqual(t, control.ID(), meta.ID())
}

// TestWriteFTP_NoPayload verifies that a listing-less ftp conversation
// still archives the transcript, with the trailing metadata linked to it.
func TestWriteFTP_NoPayload(t *testing.T) {
	c, pool, _, _ := newComposerForTest(t, defaultTestConfig(t))

	c.Process(ftpTransaction(t, false))

	require.Len(t, pool.handle.records, 2)
	control := pool.handle.records[0]
	meta := pool.handle.records[1]
	assert.Equal(t, record.TypeMetadata, control.Type())
	assert.Equal(t, record.FTPControlConversationMimetype, control.rec.Mimetype())

	concurrentTo, ok := meta.Fields().Get(record.HeaderKeyConcurrentTo)
	require.True(t, ok)
	assert.Equal(t, record.BracketedID(control.ID()), concurrentTo)
}

// TestWriteFTP_IdenticalDigestRevisit verifies that a duplicate download
// becomes a revisit record that still links to the control transcript.
func TestWriteFTP_IdenticalDigestRevisit(t *testing.T) {
	c, pool, _, _ := newComposerForTest(t, defaultTestConfig(t))
	tx, err := transaction.New("ftp://ftp.example.com/file.txt").
		WithFetchStatus(226).
		WithFTPControlConversation(ftpTranscript).
		WithRecordedPayload([]byte("file contents\n")).
		WithIdenticalDigest(true).
		Build()
	require.NoError(t, err)

	c.Process(tx)

	require.Len(t, pool.handle.records, 3)
	control := pool.handle.records[0]
	revisitRec := pool.handle.records[1]
	assert.Equal(t, record.TypeRevisit, revisitRec.Type())

	profile, ok := revisitRec.Fields().Get(record.HeaderKeyProfile)
	require.True(t, ok)
	assert.Equal(t, record.ProfileRevisitIdenticalDigest, profile)
	concurrentTo, ok := revisitRec.Fields().Get(record.HeaderKeyConcurrentTo)
	require.True(t, ok)
	assert.Equal(t, record.BracketedID(control.ID()), concurrentTo)
	// no content-begin offset on ftp payloads; the full length is declared
	assert.Equal(t, int64(len("file contents\n")), revisitRec.rec.Length())

	meta := pool.handle.records[2]
	concurrentTo, ok = meta.Fields().Get(record.HeaderKeyConcurrentTo)
	require.True(t, ok)
	assert.Equal(t, record.BracketedID(revisitRec.ID()), concurrentTo)
}

// TestWriteFTP_MetadataDisabled verifies the toggle leaves the transcript
// and payload records intact and drops only the trailing metadata.
func TestWriteFTP_MetadataDisabled(t *testing.T) {
	cfg, err := defaultConfigWithoutMetadata()
	require.NoError(t, err)
	c, pool, _, _ := newComposerForTest(t, cfg)

	c.Process(ftpTransaction(t, true))

	require.Len(t, pool.handle.records, 2)
	assert.Equal(t, record.TypeMetadata, pool.handle.records[0].Type())
	assert.Equal(t, record.TypeResource, pool.handle.records[1].Type())
}
