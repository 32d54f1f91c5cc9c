package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/warc-archiver/pkg/hashutil"
)

type Config struct {
	//===============
	// Output files
	//===============
	// Leading component of generated archive file names
	prefix string
	// Directory archive files are created in
	outputDir string
	// Whether records are gzip-compressed (one member per record)
	compress bool
	// File size at which the writer rotates to a new file
	maxFileSize int64
	// Total on-disk bytes after which composition signals the crawl to
	// finish. Zero disables the cap.
	maxTotalBytes int64

	//===============
	// Writer pool
	//===============
	// Maximum number of handles lent out concurrently
	poolMaxActive int
	// Bounded wait for an idle handle before borrow fails
	maxWaitForIdle time.Duration

	//===============
	// Record selection
	//===============
	// Whether to write 'request' type records
	writeRequests bool
	// Whether to write 'metadata' type records
	writeMetadata bool
	// Whether to write 'revisit' records for identical-digest recaptures
	writeRevisitForIdenticalDigests bool
	// Whether to write 'revisit' records for not-modified responses
	writeRevisitForNotModified bool

	//===============
	// Digests
	//===============
	// Algorithm for payload digests computed at the composition boundary
	digestAlgo hashutil.HashAlgo

	//===============
	// File-level metadata identity
	//===============
	softwareName string
	operator     string
	organization string
	audience     string
	jobName      string
	description  string
	userAgent    string
	operatorFrom string
}

func (c *Config) Prefix() string                        { return c.prefix }
func (c *Config) OutputDir() string                     { return c.outputDir }
func (c *Config) Compress() bool                        { return c.compress }
func (c *Config) MaxFileSize() int64                    { return c.maxFileSize }
func (c *Config) MaxTotalBytes() int64                  { return c.maxTotalBytes }
func (c *Config) PoolMaxActive() int                    { return c.poolMaxActive }
func (c *Config) MaxWaitForIdle() time.Duration         { return c.maxWaitForIdle }
func (c *Config) WriteRequests() bool                   { return c.writeRequests }
func (c *Config) WriteMetadata() bool                   { return c.writeMetadata }
func (c *Config) WriteRevisitForIdenticalDigests() bool { return c.writeRevisitForIdenticalDigests }
func (c *Config) WriteRevisitForNotModified() bool      { return c.writeRevisitForNotModified }
func (c *Config) DigestAlgo() hashutil.HashAlgo         { return c.digestAlgo }
func (c *Config) SoftwareName() string                  { return c.softwareName }
func (c *Config) Operator() string                      { return c.operator }
func (c *Config) Organization() string                  { return c.organization }
func (c *Config) Audience() string                      { return c.audience }
func (c *Config) JobName() string                       { return c.jobName }
func (c *Config) Description() string                   { return c.description }
func (c *Config) UserAgent() string                     { return c.userAgent }
func (c *Config) OperatorFrom() string                  { return c.operatorFrom }

type configDTO struct {
	Prefix                          string        `json:"prefix,omitempty"`
	OutputDir                       string        `json:"outputDir,omitempty"`
	Compress                        *bool         `json:"compress,omitempty"`
	MaxFileSize                     int64         `json:"maxFileSize,omitempty"`
	MaxTotalBytes                   int64         `json:"maxTotalBytes,omitempty"`
	PoolMaxActive                   int           `json:"poolMaxActive,omitempty"`
	MaxWaitForIdle                  time.Duration `json:"maxWaitForIdle,omitempty"`
	WriteRequests                   *bool         `json:"writeRequests,omitempty"`
	WriteMetadata                   *bool         `json:"writeMetadata,omitempty"`
	WriteRevisitForIdenticalDigests *bool         `json:"writeRevisitForIdenticalDigests,omitempty"`
	WriteRevisitForNotModified      *bool         `json:"writeRevisitForNotModified,omitempty"`
	DigestAlgo                      string        `json:"digestAlgo,omitempty"`
	SoftwareName                    string        `json:"softwareName,omitempty"`
	Operator                        string        `json:"operator,omitempty"`
	Organization                    string        `json:"organization,omitempty"`
	Audience                        string        `json:"audience,omitempty"`
	JobName                         string        `json:"jobName,omitempty"`
	Description                     string        `json:"description,omitempty"`
	UserAgent                       string        `json:"userAgent,omitempty"`
	OperatorFrom                    string        `json:"operatorFrom,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	builder := WithDefault()

	if dto.Prefix != "" {
		builder = builder.WithPrefix(dto.Prefix)
	}
	if dto.OutputDir != "" {
		builder = builder.WithOutputDir(dto.OutputDir)
	}
	if dto.Compress != nil {
		builder = builder.WithCompress(*dto.Compress)
	}
	if dto.MaxFileSize != 0 {
		builder = builder.WithMaxFileSize(dto.MaxFileSize)
	}
	if dto.MaxTotalBytes != 0 {
		builder = builder.WithMaxTotalBytes(dto.MaxTotalBytes)
	}
	if dto.PoolMaxActive != 0 {
		builder = builder.WithPoolMaxActive(dto.PoolMaxActive)
	}
	if dto.MaxWaitForIdle != 0 {
		builder = builder.WithMaxWaitForIdle(dto.MaxWaitForIdle)
	}
	if dto.WriteRequests != nil {
		builder = builder.WithWriteRequests(*dto.WriteRequests)
	}
	if dto.WriteMetadata != nil {
		builder = builder.WithWriteMetadata(*dto.WriteMetadata)
	}
	if dto.WriteRevisitForIdenticalDigests != nil {
		builder = builder.WithWriteRevisitForIdenticalDigests(*dto.WriteRevisitForIdenticalDigests)
	}
	if dto.WriteRevisitForNotModified != nil {
		builder = builder.WithWriteRevisitForNotModified(*dto.WriteRevisitForNotModified)
	}
	if dto.DigestAlgo != "" {
		builder = builder.WithDigestAlgo(hashutil.HashAlgo(dto.DigestAlgo))
	}
	if dto.SoftwareName != "" {
		builder = builder.WithSoftwareName(dto.SoftwareName)
	}
	if dto.Operator != "" {
		builder = builder.WithOperator(dto.Operator)
	}
	if dto.Organization != "" {
		builder = builder.WithOrganization(dto.Organization)
	}
	if dto.Audience != "" {
		builder = builder.WithAudience(dto.Audience)
	}
	if dto.JobName != "" {
		builder = builder.WithJobName(dto.JobName)
	}
	if dto.Description != "" {
		builder = builder.WithDescription(dto.Description)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}
	if dto.OperatorFrom != "" {
		builder = builder.WithOperatorFrom(dto.OperatorFrom)
	}

	return builder.Build()
}

// WithConfigFile loads configuration from a JSON file, applying defaults
// for fields the file omits.
func WithConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}
	var dto configDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return newConfigFromDTO(dto)
}
