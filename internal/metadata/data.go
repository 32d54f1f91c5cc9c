package metadata

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, metrics, reporting).

Rules:
  - ErrorCause is for observability only.
  - It must never be used to derive retry, continuation, or abort decisions.
  - Packages MAY map their local errors to ErrorCause, but MUST NOT invent
    new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	CauseUnknown ErrorCause = iota
	// CauseStorageFailure: disk full, write permission errors, filesystem
	// I/O failures while emitting records.
	CauseStorageFailure
	// CausePoolExhausted: no idle writer handle within the wait bound.
	CausePoolExhausted
	// CauseUnsupportedScheme: a transaction arrived with a scheme no
	// builder is registered for.
	CauseUnsupportedScheme
	// CauseHostResolution: local host identity could not be resolved for
	// report metadata.
	CauseHostResolution
)

type AttrKey int

const (
	AttrURL AttrKey = iota
	AttrFilename
	AttrScheme
	AttrField
)

type Attribute struct {
	key   AttrKey
	value string
}

func NewAttr(key AttrKey, value string) Attribute {
	return Attribute{key: key, value: value}
}

func (a Attribute) Key() AttrKey  { return a.key }
func (a Attribute) Value() string { return a.value }
