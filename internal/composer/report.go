package composer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rohmanhakim/warc-archiver/internal/stats"
)

// Report renders a human-readable summary of everything this composer has
// written.
func (c *Composer) Report() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Processor: %T (%s)\n", c, c.cfg.SoftwareName())
	buf.WriteString("  Function:          Writes WARCs\n")
	fmt.Fprintf(&buf, "  Total transactions written: %d\n", c.aggregator.TransactionsWritten())
	fmt.Fprintf(&buf, "  Revisit records:   %d\n",
		c.aggregator.Get(stats.TypeRevisit, stats.MetricNumRecords))

	contentBytes := c.aggregator.Get(stats.TypeResponse, stats.MetricContentBytes) +
		c.aggregator.Get(stats.TypeResource, stats.MetricContentBytes)
	fmt.Fprintf(&buf, "  Crawled content bytes (including http headers): %d (%s)\n",
		contentBytes, humanize.Bytes(uint64(contentBytes)))

	totalBytes := c.aggregator.Get(stats.TypeTotals, stats.MetricTotalBytes)
	fmt.Fprintf(&buf, "  Total uncompressed bytes (including all record headers): %d (%s)\n",
		totalBytes, humanize.Bytes(uint64(totalBytes)))

	compression := "uncompressed"
	if c.cfg.Compress() {
		compression = "compressed"
	}
	written := c.aggregator.TotalBytesWritten()
	fmt.Fprintf(&buf, "  Total size on disk (%s): %d (%s)\n",
		compression, written, humanize.Bytes(uint64(written)))

	return buf.String()
}
