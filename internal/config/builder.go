package config

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/warc-archiver/pkg/hashutil"
)

type ConfigBuilder struct {
	cfg Config
}

// WithDefault starts a builder carrying the defaults of a production
// write path: request and metadata records on, both revisit modes on,
// compressed files capped at 1 SI gigabyte, one pooled writer.
func WithDefault() ConfigBuilder {
	return ConfigBuilder{
		cfg: Config{
			prefix:                          "WEB",
			outputDir:                       "warcs",
			compress:                        true,
			maxFileSize:                     1_000_000_000,
			maxTotalBytes:                   0,
			poolMaxActive:                   1,
			maxWaitForIdle:                  500 * time.Millisecond,
			writeRequests:                   true,
			writeMetadata:                   true,
			writeRevisitForIdenticalDigests: true,
			writeRevisitForNotModified:      true,
			digestAlgo:                      hashutil.HashAlgoSHA256,
			softwareName:                    "warc-archiver",
		},
	}
}

func (b ConfigBuilder) WithPrefix(prefix string) ConfigBuilder {
	b.cfg.prefix = prefix
	return b
}

func (b ConfigBuilder) WithOutputDir(dir string) ConfigBuilder {
	b.cfg.outputDir = dir
	return b
}

func (b ConfigBuilder) WithCompress(compress bool) ConfigBuilder {
	b.cfg.compress = compress
	return b
}

func (b ConfigBuilder) WithMaxFileSize(size int64) ConfigBuilder {
	b.cfg.maxFileSize = size
	return b
}

func (b ConfigBuilder) WithMaxTotalBytes(size int64) ConfigBuilder {
	b.cfg.maxTotalBytes = size
	return b
}

func (b ConfigBuilder) WithPoolMaxActive(n int) ConfigBuilder {
	b.cfg.poolMaxActive = n
	return b
}

func (b ConfigBuilder) WithMaxWaitForIdle(d time.Duration) ConfigBuilder {
	b.cfg.maxWaitForIdle = d
	return b
}

func (b ConfigBuilder) WithWriteRequests(write bool) ConfigBuilder {
	b.cfg.writeRequests = write
	return b
}

func (b ConfigBuilder) WithWriteMetadata(write bool) ConfigBuilder {
	b.cfg.writeMetadata = write
	return b
}

func (b ConfigBuilder) WithWriteRevisitForIdenticalDigests(write bool) ConfigBuilder {
	b.cfg.writeRevisitForIdenticalDigests = write
	return b
}

func (b ConfigBuilder) WithWriteRevisitForNotModified(write bool) ConfigBuilder {
	b.cfg.writeRevisitForNotModified = write
	return b
}

func (b ConfigBuilder) WithDigestAlgo(algo hashutil.HashAlgo) ConfigBuilder {
	b.cfg.digestAlgo = algo
	return b
}

func (b ConfigBuilder) WithSoftwareName(name string) ConfigBuilder {
	b.cfg.softwareName = name
	return b
}

func (b ConfigBuilder) WithOperator(operator string) ConfigBuilder {
	b.cfg.operator = operator
	return b
}

func (b ConfigBuilder) WithOrganization(organization string) ConfigBuilder {
	b.cfg.organization = organization
	return b
}

func (b ConfigBuilder) WithAudience(audience string) ConfigBuilder {
	b.cfg.audience = audience
	return b
}

func (b ConfigBuilder) WithJobName(jobName string) ConfigBuilder {
	b.cfg.jobName = jobName
	return b
}

func (b ConfigBuilder) WithDescription(description string) ConfigBuilder {
	b.cfg.description = description
	return b
}

func (b ConfigBuilder) WithUserAgent(userAgent string) ConfigBuilder {
	b.cfg.userAgent = userAgent
	return b
}

func (b ConfigBuilder) WithOperatorFrom(operatorFrom string) ConfigBuilder {
	b.cfg.operatorFrom = operatorFrom
	return b
}

func (b ConfigBuilder) Build() (Config, error) {
	if b.cfg.maxFileSize <= 0 {
		return Config{}, fmt.Errorf("%w: maxFileSize must be positive", ErrInvalidConfig)
	}
	if b.cfg.maxTotalBytes < 0 {
		return Config{}, fmt.Errorf("%w: maxTotalBytes cannot be negative", ErrInvalidConfig)
	}
	if b.cfg.poolMaxActive < 1 {
		return Config{}, fmt.Errorf("%w: poolMaxActive must be at least 1", ErrInvalidConfig)
	}
	if b.cfg.maxWaitForIdle <= 0 {
		return Config{}, fmt.Errorf("%w: maxWaitForIdle must be positive", ErrInvalidConfig)
	}
	switch b.cfg.digestAlgo {
	case hashutil.HashAlgoSHA256, hashutil.HashAlgoBLAKE3:
	default:
		return Config{}, fmt.Errorf("%w: unsupported digest algorithm %q", ErrInvalidConfig, b.cfg.digestAlgo)
	}
	if b.cfg.outputDir == "" {
		return Config{}, fmt.Errorf("%w: outputDir cannot be empty", ErrInvalidConfig)
	}
	return b.cfg, nil
}
