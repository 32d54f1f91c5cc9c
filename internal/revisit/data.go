package revisit

// Kind of primary record the decision selects.
type Kind int

const (
	KindFullCapture Kind = iota
	KindIdenticalDigest
	KindNotModified
)

// HTTP status signalling an unchanged resource.
const StatusNotModified = 304

// Options are the revisit toggles in effect for one composition call.
type Options struct {
	IdenticalDigestEnabled bool
	NotModifiedEnabled     bool
}

// Decision is the outcome of one revisit evaluation.
type Decision struct {
	kind          Kind
	profile       string
	payloadLength int64
	truncation    string
}

func (d Decision) Kind() Kind {
	return d.kind
}

// Profile is the revisit profile URI; empty for full captures.
func (d Decision) Profile() string {
	return d.profile
}

// PayloadLength is the declared payload length for revisit records.
func (d Decision) PayloadLength() int64 {
	return d.payloadLength
}

// Truncation is the truncated-field value for full captures, or "" when
// the capture was not cut short.
func (d Decision) Truncation() string {
	return d.truncation
}

func (d Decision) IsRevisit() bool {
	return d.kind != KindFullCapture
}
