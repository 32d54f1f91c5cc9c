package composer

import (
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/build"
	"github.com/rohmanhakim/warc-archiver/internal/config"
	"github.com/rohmanhakim/warc-archiver/internal/metadata"
	"github.com/rohmanhakim/warc-archiver/internal/record"
)

// FileMetadata assembles the file-level metadata block that leads every
// output file as its warcinfo record. Assembled once at startup and handed
// to the writer pool.
//
// Failure to resolve the local host identity is never fatal: the affected
// fields are omitted and the failure is logged.
func FileMetadata(cfg config.Config, sink metadata.MetadataSink) []byte {
	logger := slog.Default().With("component", "composer")

	r := record.NewFields()
	r.AddLabelValue("software", cfg.SoftwareName()+"/"+build.FullVersion())

	hostname, err := os.Hostname()
	if err != nil {
		logger.Warn("unable to obtain local crawl engine host", "err", err)
		sink.RecordError(
			time.Now(),
			"composer",
			"FileMetadata",
			metadata.CauseHostResolution,
			err.Error(),
			nil,
		)
	} else {
		if addrs, lerr := net.LookupIP(hostname); lerr == nil && len(addrs) > 0 {
			r.AddLabelValue("ip", addrs[0].String())
		} else {
			logger.Warn("unable to resolve local host address", "host", hostname, "err", lerr)
		}
		r.AddLabelValue("hostname", hostname)
	}

	r.AddLabelValue("format", "WARC File Format 1.0")
	r.AddLabelValue("conformsTo", "http://bibnum.bnf.fr/WARC/WARC_ISO_28500_version1_latestdraft.pdf")

	r.AddLabelValueIfNotBlank("operator", cfg.Operator())
	r.AddLabelValueIfNotBlank("publisher", cfg.Organization())
	r.AddLabelValueIfNotBlank("audience", cfg.Audience())
	r.AddLabelValueIfNotBlank("isPartOf", cfg.JobName())
	r.AddLabelValueIfNotBlank("description", cfg.Description())
	r.AddLabelValueIfNotBlank("http-header-user-agent", cfg.UserAgent())
	r.AddLabelValueIfNotBlank("http-header-from", cfg.OperatorFrom())

	return r.Bytes()
}
