package stats

// Record-type rows of the stats table. TypeTotals is the synthetic row
// accumulated across all record types.
const (
	TypeTotals   = "totals"
	TypeWarcinfo = "warcinfo"
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeResource = "resource"
	TypeRevisit  = "revisit"
	TypeMetadata = "metadata"
)

// Per-row metrics.
const (
	MetricNumRecords   = "numRecords"
	MetricContentBytes = "contentBytes"
	MetricTotalBytes   = "totalBytes"
	MetricSizeOnDisk   = "sizeOnDisk"
)

// Snapshot is the per-call temporary counter shape a writer handle
// accumulates for one transaction: record-type → metric → count.
type Snapshot map[string]map[string]int64

func NewSnapshot() Snapshot {
	return make(Snapshot)
}

func (s Snapshot) Add(recordType string, metric string, delta int64) {
	row, ok := s[recordType]
	if !ok {
		row = make(map[string]int64)
		s[recordType] = row
	}
	row[metric] += delta
}

// Get reads one counter from a snapshot; absent keys read zero.
func (s Snapshot) Get(recordType string, metric string) int64 {
	return s[recordType][metric]
}
