package warcfile

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/rohmanhakim/warc-archiver/internal/record"
	"github.com/rohmanhakim/warc-archiver/internal/stats"
	"github.com/rohmanhakim/warc-archiver/pkg/fileutil"
	"github.com/rohmanhakim/warc-archiver/pkg/timeutil"
)

const warcVersionLine = "WARC/1.0\r\n"

// countingWriter tracks the byte offset of everything written to the
// underlying file, so Position never needs a seek.
type countingWriter struct {
	f *os.File
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.f.Write(p)
	c.n += int64(n)
	return n, err
}

// Writer emits records to one size-capped archive file at a time, rotating
// to the next serial when the cap is exceeded. Each new file starts with a
// warcinfo record carrying the file-level metadata block. Not safe for
// concurrent use; exclusive ownership is the pool's contract.
type Writer struct {
	settings Settings
	serial   *atomic.Int32
	hostname string
	logger   *slog.Logger

	out      *countingWriter
	path     string
	tmpStats stats.Snapshot
}

func newWriter(settings Settings, serial *atomic.Int32, hostname string) *Writer {
	return &Writer{
		settings: settings,
		serial:   serial,
		hostname: hostname,
		logger:   settings.Logger,
		tmpStats: stats.NewSnapshot(),
	}
}

func (w *Writer) Position() int64 {
	if w.out == nil {
		return 0
	}
	return w.out.n
}

func (w *Writer) CheckSize() error {
	if w.out == nil {
		return w.createFile()
	}
	if w.out.n > w.settings.MaxFileSize {
		if err := w.closeFile(); err != nil {
			return err
		}
		return w.createFile()
	}
	return nil
}

func (w *Writer) CurrentName() string {
	if w.path == "" {
		return ""
	}
	return fileutil.StripSuffix(filepath.Base(w.path), OccupiedSuffix)
}

func (w *Writer) ResetTmpStats() {
	w.tmpStats = stats.NewSnapshot()
}

func (w *Writer) TmpStats() stats.Snapshot {
	return w.tmpStats
}

func (w *Writer) WriteRequestRecord(rec record.Record) error {
	return w.writeRecord(rec)
}

func (w *Writer) WriteResponseRecord(rec record.Record) error {
	return w.writeRecord(rec)
}

func (w *Writer) WriteResourceRecord(rec record.Record) error {
	return w.writeRecord(rec)
}

func (w *Writer) WriteRevisitRecord(rec record.Record) error {
	return w.writeRecord(rec)
}

func (w *Writer) WriteMetadataRecord(rec record.Record) error {
	return w.writeRecord(rec)
}

func (w *Writer) createFile() error {
	serial := w.serial.Add(1)
	name := fmt.Sprintf("%s-%s-%05d-%s%s%s",
		w.settings.Prefix,
		timeutil.Timestamp17(time.Now()),
		serial,
		w.hostname,
		w.settings.extension(),
		OccupiedSuffix,
	)
	path := filepath.Join(w.settings.OutputDir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return &WriteError{Message: err.Error(), Cause: ErrCauseCreateFile}
	}
	w.out = &countingWriter{f: f}
	w.path = path
	w.logger.Info("opened archive file", "file", name)
	return w.writeWarcinfo()
}

func (w *Writer) closeFile() error {
	if w.out == nil {
		return nil
	}
	if err := w.out.f.Close(); err != nil {
		return &WriteError{Message: err.Error(), Cause: ErrCauseCloseFile}
	}
	final, ferr := fileutil.SwapSuffix(w.path, OccupiedSuffix, "")
	if ferr != nil {
		return &WriteError{Message: ferr.Error(), Cause: ErrCauseCloseFile}
	}
	w.logger.Info("closed archive file", "file", filepath.Base(final), "bytes", w.out.n)
	w.out = nil
	w.path = ""
	return nil
}

// invalidate closes the current file and marks it unusable. The file is
// excluded from further reuse or rotation.
func (w *Writer) invalidate() {
	if w.out == nil {
		return
	}
	if err := w.out.f.Close(); err != nil {
		w.logger.Warn("closing invalidated file", "file", w.path, "err", err)
	}
	if _, err := fileutil.SwapSuffix(w.path, OccupiedSuffix, InvalidSuffix); err != nil {
		w.logger.Warn("marking file invalid", "file", w.path, "err", err)
	} else {
		w.logger.Warn("invalidated archive file", "file", filepath.Base(w.path))
	}
	w.out = nil
	w.path = ""
}

// close finishes the current file cleanly. Used on pool shutdown.
func (w *Writer) close() error {
	return w.closeFile()
}

// writeWarcinfo emits the leading warcinfo record of a fresh file.
func (w *Writer) writeWarcinfo() error {
	id, err := w.settings.IDGenerator.NewID()
	if err != nil {
		return &WriteError{Message: err.Error(), Cause: ErrCauseWriteRecord}
	}
	fields := record.NewFields()
	fields.AddLabelValue(record.HeaderKeyFilename, w.CurrentName())
	body := w.settings.FileMetadata
	rec := record.New(
		record.TypeWarcinfo,
		id,
		"",
		time.Now(),
		record.FieldsMimetype,
		fields,
		bytes.NewReader(body),
		int64(len(body)),
	)
	return w.writeRecord(rec)
}

// writeRecord serializes one record. With compression on, the record is
// its own gzip member so files stay seekable per record.
func (w *Writer) writeRecord(rec record.Record) error {
	if w.out == nil {
		if err := w.createFile(); err != nil {
			return err
		}
	}

	header := w.recordHeader(rec)
	diskBefore := w.out.n

	var sink io.Writer = w.out
	var gz *gzip.Writer
	if w.settings.Compress {
		gz = gzip.NewWriter(w.out)
		sink = gz
	}

	if _, err := sink.Write(header); err != nil {
		return &WriteError{Message: err.Error(), Cause: ErrCauseWriteRecord}
	}
	if rec.Length() > 0 {
		n, err := io.CopyN(sink, rec.Payload(), rec.Length())
		if err != nil {
			if err == io.EOF {
				return &WriteError{
					Message: fmt.Sprintf("declared %d, copied %d", rec.Length(), n),
					Cause:   ErrCauseShortPayload,
				}
			}
			return &WriteError{Message: err.Error(), Cause: ErrCauseWriteRecord}
		}
	}
	if _, err := sink.Write([]byte("\r\n\r\n")); err != nil {
		return &WriteError{Message: err.Error(), Cause: ErrCauseWriteRecord}
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return &WriteError{Message: err.Error(), Cause: ErrCauseWriteRecord}
		}
	}

	recordType := string(rec.Type())
	uncompressed := int64(len(header)) + rec.Length() + 4
	diskDelta := w.out.n - diskBefore
	w.noteRecord(recordType, rec.Length(), uncompressed, diskDelta)
	return nil
}

// recordHeader renders the version line, mandatory fields, the record's
// named fields, and the content headers.
func (w *Writer) recordHeader(rec record.Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(warcVersionLine)
	writeHeaderLine(&buf, record.HeaderKeyType, string(rec.Type()))
	if rec.TargetURI() != "" {
		writeHeaderLine(&buf, record.HeaderKeyTargetURI, rec.TargetURI())
	}
	writeHeaderLine(&buf, record.HeaderKeyDate, timeutil.WARCDate(rec.Date()))
	writeHeaderLine(&buf, record.HeaderKeyRecordID, record.BracketedID(rec.ID()))
	for _, line := range headerLines(rec.NamedFields()) {
		buf.WriteString(line)
	}
	if rec.Mimetype() != "" {
		writeHeaderLine(&buf, "Content-Type", rec.Mimetype())
	}
	writeHeaderLine(&buf, "Content-Length", fmt.Sprintf("%d", rec.Length()))
	buf.WriteString("\r\n")
	return buf.Bytes()
}

func writeHeaderLine(buf *bytes.Buffer, key string, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// headerLines renders a named-field block as individual header lines,
// without the block terminator Fields.Bytes appends.
func headerLines(fields *record.Fields) []string {
	raw := fields.Bytes()
	// strip trailing blank line
	raw = raw[:len(raw)-2]
	if len(raw) == 0 {
		return nil
	}
	var lines []string
	for len(raw) > 0 {
		i := bytes.Index(raw, []byte("\r\n"))
		lines = append(lines, string(raw[:i+2]))
		raw = raw[i+2:]
	}
	return lines
}

func (w *Writer) noteRecord(recordType string, contentBytes int64, totalBytes int64, sizeOnDisk int64) {
	for _, row := range []string{recordType, stats.TypeTotals} {
		w.tmpStats.Add(row, stats.MetricNumRecords, 1)
		w.tmpStats.Add(row, stats.MetricContentBytes, contentBytes)
		w.tmpStats.Add(row, stats.MetricTotalBytes, totalBytes)
		w.tmpStats.Add(row, stats.MetricSizeOnDisk, sizeOnDisk)
	}
}
