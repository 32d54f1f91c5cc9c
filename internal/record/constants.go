package record

// WARC/1.0 named-field vocabulary. Keys must match the standard literally;
// readers dispatch on them byte for byte.
const (
	HeaderKeyType          = "WARC-Type"
	HeaderKeyDate          = "WARC-Date"
	HeaderKeyTargetURI     = "WARC-Target-URI"
	HeaderKeyRecordID      = "WARC-Record-ID"
	HeaderKeyConcurrentTo  = "WARC-Concurrent-To"
	HeaderKeyIP            = "WARC-IP-Address"
	HeaderKeyPayloadDigest = "WARC-Payload-Digest"
	HeaderKeyProfile       = "WARC-Profile"
	HeaderKeyTruncated     = "WARC-Truncated"
	HeaderKeyEtag          = "WARC-Etag"
	HeaderKeyLastModified  = "WARC-Last-Modified"
	HeaderKeyFilename      = "WARC-Filename"
)

// Enumerated values for the truncated field.
const (
	TruncatedValueTime   = "time"
	TruncatedValueLength = "length"
	TruncatedValueHead   = "head"
)

// Revisit profiles.
const (
	ProfileRevisitIdenticalDigest = "http://netpreserve.org/warc/1.0/revisit/identical-payload-digest"
	ProfileRevisitNotModified     = "http://netpreserve.org/warc/1.0/revisit/server-not-modified"
)

// Payload mimetypes.
const (
	HTTPRequestMimetype            = "application/http; msgtype=request"
	HTTPResponseMimetype           = "application/http; msgtype=response"
	FTPControlConversationMimetype = "message/x-ftp-control-conversation"
	FieldsMimetype                 = "application/warc-fields"
)

// Qualifier key used when deriving secondary record IDs from the base ID.
const QualifierKeyType = "type"

// BracketedID wraps a record ID in the angle brackets required wherever an
// ID appears as a named-field value.
func BracketedID(id string) string {
	return "<" + id + ">"
}
