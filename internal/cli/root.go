package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohmanhakim/warc-archiver/internal/composer"
	"github.com/rohmanhakim/warc-archiver/internal/config"
	"github.com/rohmanhakim/warc-archiver/internal/metadata"
	"github.com/rohmanhakim/warc-archiver/internal/recordid"
	"github.com/rohmanhakim/warc-archiver/internal/stats"
	"github.com/rohmanhakim/warc-archiver/internal/warcfile"
	"github.com/rohmanhakim/warc-archiver/pkg/hashutil"
)

var (
	cfgFile        string
	prefix         string
	outputDir      string
	compress       bool
	noCompress     bool
	maxFileSize    int64
	maxTotalBytes  int64
	poolMaxActive  int
	maxWaitForIdle time.Duration
	noRequests     bool
	noMetadata     bool
	noRevisits     bool
	digestAlgo     string
	operator       string
	jobName        string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "warc-archiver",
	Short: "Archival-record composition and write orchestration for web crawls.",
	Long: `warc-archiver is the write side of a web crawl: it takes completed
fetch transactions and turns each into a set of linked WARC records
(response or revisit, request, and metadata) written through a pooled,
size-rotating, optionally compressed file writer.

This command validates the configuration, prepares the output directory
and writer pool, and prints the effective settings. Fetch transactions
are submitted programmatically by the crawl engine.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := InitConfigWithError()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		sink := &metadata.NoopSink{}
		pool, perr := warcfile.NewPool(warcfile.Settings{
			OutputDir:      cfg.OutputDir(),
			Prefix:         cfg.Prefix(),
			Compress:       cfg.Compress(),
			MaxFileSize:    cfg.MaxFileSize(),
			PoolMaxActive:  cfg.PoolMaxActive(),
			MaxWaitForIdle: cfg.MaxWaitForIdle(),
			FileMetadata:   composer.FileMetadata(cfg, sink),
		})
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Error: preparing writer pool: %s\n", perr)
			os.Exit(1)
		}
		defer pool.Close()

		comp := composer.New(cfg, pool, recordid.NewUUIDGenerator(), stats.NewAggregator(), sink)

		fmt.Printf("Configuration initialized successfully\n")
		fmt.Printf("Prefix: %s\n", cfg.Prefix())
		fmt.Printf("Output Directory: %s\n", cfg.OutputDir())
		fmt.Printf("Compress: %t\n", cfg.Compress())
		fmt.Printf("Max File Size: %d\n", cfg.MaxFileSize())
		fmt.Printf("Max Total Bytes: %d\n", cfg.MaxTotalBytes())
		fmt.Printf("Pool Max Active: %d\n", cfg.PoolMaxActive())
		fmt.Printf("Max Wait For Idle: %v\n", cfg.MaxWaitForIdle())
		fmt.Printf("Write Requests: %t\n", cfg.WriteRequests())
		fmt.Printf("Write Metadata: %t\n", cfg.WriteMetadata())
		fmt.Printf("Revisit (identical digest): %t\n", cfg.WriteRevisitForIdenticalDigests())
		fmt.Printf("Revisit (not modified): %t\n", cfg.WriteRevisitForNotModified())
		fmt.Printf("Digest Algorithm: %s\n", cfg.DigestAlgo())
		fmt.Println()
		fmt.Print(comp.Report())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "leading component of archive file names")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory archive files are created in")
	rootCmd.PersistentFlags().BoolVar(&compress, "compress", false, "gzip-compress records (default on)")
	rootCmd.PersistentFlags().BoolVar(&noCompress, "no-compress", false, "write uncompressed archive files")
	rootCmd.PersistentFlags().Int64Var(&maxFileSize, "max-file-size", 0, "file size at which the writer rotates")
	rootCmd.PersistentFlags().Int64Var(&maxTotalBytes, "max-total-bytes", 0, "stop signal after this many bytes on disk (0 for unlimited)")
	rootCmd.PersistentFlags().IntVar(&poolMaxActive, "pool-max-active", 0, "maximum concurrently lent writer handles")
	rootCmd.PersistentFlags().DurationVar(&maxWaitForIdle, "max-wait-for-idle", 0, "bounded wait for an idle writer handle")
	rootCmd.PersistentFlags().BoolVar(&noRequests, "no-requests", false, "skip 'request' type records")
	rootCmd.PersistentFlags().BoolVar(&noMetadata, "no-metadata", false, "skip 'metadata' type records")
	rootCmd.PersistentFlags().BoolVar(&noRevisits, "no-revisits", false, "always write full records, never revisits")
	rootCmd.PersistentFlags().StringVar(&digestAlgo, "digest-algo", "", "payload digest algorithm (sha256 or blake3)")
	rootCmd.PersistentFlags().StringVar(&operator, "operator", "", "operator identity for the file-level metadata block")
	rootCmd.PersistentFlags().StringVar(&jobName, "job-name", "", "crawl job name for the file-level metadata block")
}

// InitConfigWithError reads the config file when given, then applies CLI
// flag overrides through the builder chain.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	fmt.Println("No config file specified. Using default flag values")

	configBuilder := config.WithDefault()

	if prefix != "" {
		configBuilder = configBuilder.WithPrefix(prefix)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if compress {
		configBuilder = configBuilder.WithCompress(true)
	}

	if noCompress {
		configBuilder = configBuilder.WithCompress(false)
	}

	if maxFileSize > 0 {
		configBuilder = configBuilder.WithMaxFileSize(maxFileSize)
	}

	if maxTotalBytes > 0 {
		configBuilder = configBuilder.WithMaxTotalBytes(maxTotalBytes)
	}

	if poolMaxActive > 0 {
		configBuilder = configBuilder.WithPoolMaxActive(poolMaxActive)
	}

	if maxWaitForIdle > 0 {
		configBuilder = configBuilder.WithMaxWaitForIdle(maxWaitForIdle)
	}

	if noRequests {
		configBuilder = configBuilder.WithWriteRequests(false)
	}

	if noMetadata {
		configBuilder = configBuilder.WithWriteMetadata(false)
	}

	if noRevisits {
		configBuilder = configBuilder.
			WithWriteRevisitForIdenticalDigests(false).
			WithWriteRevisitForNotModified(false)
	}

	if digestAlgo != "" {
		configBuilder = configBuilder.WithDigestAlgo(hashutil.HashAlgo(digestAlgo))
	}

	if operator != "" {
		configBuilder = configBuilder.WithOperator(operator)
	}

	if jobName != "" {
		configBuilder = configBuilder.WithJobName(jobName)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetPrefixForTest(p string) {
	prefix = p
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetNoCompressForTest(v bool) {
	noCompress = v
}

func SetMaxFileSizeForTest(size int64) {
	maxFileSize = size
}

func SetMaxTotalBytesForTest(size int64) {
	maxTotalBytes = size
}

func SetPoolMaxActiveForTest(n int) {
	poolMaxActive = n
}

func SetNoRequestsForTest(v bool) {
	noRequests = v
}

func SetNoRevisitsForTest(v bool) {
	noRevisits = v
}

func SetDigestAlgoForTest(algo string) {
	digestAlgo = algo
}

func ResetFlags() {
	cfgFile = ""
	prefix = ""
	outputDir = ""
	compress = false
	noCompress = false
	maxFileSize = 0
	maxTotalBytes = 0
	poolMaxActive = 0
	maxWaitForIdle = 0
	noRequests = false
	noMetadata = false
	noRevisits = false
	digestAlgo = ""
	operator = ""
	jobName = ""
}
