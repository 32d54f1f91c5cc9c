package record

import (
	"io"
	"time"
)

// Record type boundary

type Type string

const (
	TypeWarcinfo Type = "warcinfo"
	TypeRequest  Type = "request"
	TypeResponse Type = "response"
	TypeResource Type = "resource"
	TypeRevisit  Type = "revisit"
	TypeMetadata Type = "metadata"
)

// Record is one archival container record, fully assembled but not yet
// serialized. The payload reader is consumed exactly once when the record
// is written; Length is the declared payload length, which may be shorter
// than what the reader could supply (revisit truncation).
type Record struct {
	recordType  Type
	id          string
	targetURI   string
	date        time.Time
	mimetype    string
	namedFields *Fields
	payload     io.Reader
	length      int64
}

func New(
	recordType Type,
	id string,
	targetURI string,
	date time.Time,
	mimetype string,
	namedFields *Fields,
	payload io.Reader,
	length int64,
) Record {
	if namedFields == nil {
		namedFields = NewFields()
	}
	return Record{
		recordType:  recordType,
		id:          id,
		targetURI:   targetURI,
		date:        date,
		mimetype:    mimetype,
		namedFields: namedFields,
		payload:     payload,
		length:      length,
	}
}

func (r *Record) Type() Type {
	return r.recordType
}

func (r *Record) ID() string {
	return r.id
}

func (r *Record) TargetURI() string {
	return r.targetURI
}

func (r *Record) Date() time.Time {
	return r.date
}

func (r *Record) Mimetype() string {
	return r.mimetype
}

func (r *Record) NamedFields() *Fields {
	return r.namedFields
}

func (r *Record) Payload() io.Reader {
	return r.payload
}

func (r *Record) Length() int64 {
	return r.length
}
