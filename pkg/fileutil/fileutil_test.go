package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/warc-archiver/pkg/fileutil"
)

// TestEnsureDir tests nested directory creation and idempotency.
func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	if err := fileutil.EnsureDir(base, "a", "b", "c"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	info, err := os.Stat(filepath.Join(base, "a", "b", "c"))
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected directory, got %v (err %v)", info, err)
	}

	// creating again is not an error
	if err := fileutil.EnsureDir(base, "a", "b", "c"); err != nil {
		t.Errorf("Expected idempotent creation, got %v", err)
	}
}

// TestStripSuffix tests suffix removal and the absent-suffix passthrough.
func TestStripSuffix(t *testing.T) {
	if got := fileutil.StripSuffix("file.warc.open", ".open"); got != "file.warc" {
		t.Errorf("Expected file.warc, got %s", got)
	}
	if got := fileutil.StripSuffix("file.warc", ".open"); got != "file.warc" {
		t.Errorf("Expected unchanged name, got %s", got)
	}
}

// TestSwapSuffix tests the rename from in-progress to final and invalid
// forms.
func TestSwapSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.warc.open")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	final, err := fileutil.SwapSuffix(path, ".open", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if final != filepath.Join(dir, "file.warc") {
		t.Errorf("Expected stripped path, got %s", final)
	}
	if _, serr := os.Stat(final); serr != nil {
		t.Errorf("Expected renamed file to exist: %v", serr)
	}
	if _, serr := os.Stat(path); !os.IsNotExist(serr) {
		t.Errorf("Expected original path gone, got %v", serr)
	}
}

// TestSwapSuffixMissingFile tests the classified error for a rename of a
// nonexistent path.
func TestSwapSuffixMissingFile(t *testing.T) {
	_, err := fileutil.SwapSuffix(filepath.Join(t.TempDir(), "absent.open"), ".open", ".invalid")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}
