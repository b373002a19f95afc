package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func GetTempDir() string {
	return filepath.Join(os.TempDir(), "doccollect")
}

func CreateTemp(pattern string) (*os.File, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.CreateTemp(tempDir, pattern)
}

// Strip any directory part a client sent along with the filename.
// Returns "document.pdf" when nothing usable is left.
func SanitizeFileName(fileName string) string {
	name := strings.ReplaceAll(fileName, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "document.pdf"
	}
	return name
}

// Name of the temporary bulk archive object, example: "temp-zips/abc-1718000000000.zip"
func ToTemporaryArchiveKey(directory, slug string, at time.Time) string {
	return fmt.Sprintf("%s/%s-%d.zip", directory, slug, at.UnixMilli())
}

// Example: "DocCollect-abc-2024-06-10.zip"
func ToArchiveDownloadName(prefix, slug string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s.zip", prefix, slug, at.Format("2006-01-02"))
}
