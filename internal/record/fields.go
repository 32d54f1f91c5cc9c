package record

import (
	"bytes"
	"strings"
)

// Fields is an ordered label→value block. Labels may repeat (outlinks) and
// a label may carry no value (marker labels like "seed"). Order is the
// order of insertion; serialization preserves it.
type Fields struct {
	pairs []pair
}

type pair struct {
	label    string
	value    string
	hasValue bool
}

func NewFields() *Fields {
	return &Fields{}
}

// AddLabel appends a value-less marker label.
func (f *Fields) AddLabel(label string) {
	f.pairs = append(f.pairs, pair{label: label})
}

// AddLabelValue appends a label with a value.
func (f *Fields) AddLabelValue(label string, value string) {
	f.pairs = append(f.pairs, pair{label: label, value: value, hasValue: true})
}

// AddLabelValueIfNotBlank appends the pair only when value has non-space
// content. Absent optional fields are omitted, never an error.
func (f *Fields) AddLabelValueIfNotBlank(label string, value string) {
	if strings.TrimSpace(value) != "" {
		f.AddLabelValue(label, value)
	}
}

// Get returns the first value recorded for label.
func (f *Fields) Get(label string) (string, bool) {
	for _, p := range f.pairs {
		if p.label == label {
			return p.value, true
		}
	}
	return "", false
}

// GetAll returns every value recorded for label, in order.
func (f *Fields) GetAll(label string) []string {
	var values []string
	for _, p := range f.pairs {
		if p.label == label {
			values = append(values, p.value)
		}
	}
	return values
}

func (f *Fields) Len() int {
	return len(f.pairs)
}

// Bytes serializes the block: one CRLF-terminated "label: value" line per
// pair (bare label for markers) and a closing CRLF.
func (f *Fields) Bytes() []byte {
	var buf bytes.Buffer
	for _, p := range f.pairs {
		buf.WriteString(p.label)
		if p.hasValue {
			buf.WriteString(": ")
			buf.WriteString(p.value)
		}
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	return buf.Bytes()
}

func (f *Fields) String() string {
	return string(f.Bytes())
}
