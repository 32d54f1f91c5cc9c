package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rohmanhakim/warc-archiver/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// StripSuffix returns name without the given suffix. Name is returned
// unchanged when the suffix is absent.
func StripSuffix(name string, suffix string) string {
	return strings.TrimSuffix(name, suffix)
}

// SwapSuffix renames path so that oldSuffix is replaced by newSuffix.
// The renamed path is returned.
func SwapSuffix(path string, oldSuffix string, newSuffix string) (string, failure.ClassifiedError) {
	target := StripSuffix(path, oldSuffix) + newSuffix
	if err := os.Rename(path, target); err != nil {
		return "", &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: errors.Is(err, syscall.ENOSPC),
			Cause:     ErrCauseRenameError,
		}
	}
	return target, nil
}
