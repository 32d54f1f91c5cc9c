package warcfile

import (
	"log/slog"
	"time"

	"github.com/rohmanhakim/warc-archiver/internal/recordid"
)

const (
	// OccupiedSuffix marks a file currently lent out to a writer.
	OccupiedSuffix = ".open"
	// InvalidSuffix marks a file whose writer hit an I/O failure; such
	// files are excluded from reuse and rotation.
	InvalidSuffix = ".invalid"

	warcExtension           = ".warc"
	compressedWarcExtension = ".warc.gz"

	// DefaultMaxFileSize is 1 SI gigabyte, per the container format's
	// appendix A recommendation.
	DefaultMaxFileSize = int64(1_000_000_000)

	DefaultPoolMaxActive  = 1
	DefaultMaxWaitForIdle = 500 * time.Millisecond
)

// Settings configures a pool and the writers it creates.
type Settings struct {
	// OutputDir is the directory archive files are created in.
	OutputDir string
	// Prefix is the leading component of generated file names.
	Prefix string
	// Compress enables one gzip member per record.
	Compress bool
	// MaxFileSize triggers rotation once a file grows past it.
	MaxFileSize int64
	// PoolMaxActive bounds concurrently lent handles.
	PoolMaxActive int
	// MaxWaitForIdle bounds how long Borrow blocks for a free handle.
	MaxWaitForIdle time.Duration
	// FileMetadata is the serialized file-level metadata block written as
	// the leading warcinfo record of every new file.
	FileMetadata []byte
	// IDGenerator issues warcinfo record IDs.
	IDGenerator recordid.Generator
	// Logger receives pool and writer lifecycle events.
	Logger *slog.Logger
}

func (s Settings) withDefaults() Settings {
	if s.Prefix == "" {
		s.Prefix = "WEB"
	}
	if s.MaxFileSize <= 0 {
		s.MaxFileSize = DefaultMaxFileSize
	}
	if s.PoolMaxActive <= 0 {
		s.PoolMaxActive = DefaultPoolMaxActive
	}
	if s.MaxWaitForIdle <= 0 {
		s.MaxWaitForIdle = DefaultMaxWaitForIdle
	}
	if s.IDGenerator == nil {
		s.IDGenerator = recordid.NewUUIDGenerator()
	}
	if s.Logger == nil {
		s.Logger = slog.Default().With("component", "warcfile")
	}
	return s
}

func (s Settings) extension() string {
	if s.Compress {
		return compressedWarcExtension
	}
	return warcExtension
}
