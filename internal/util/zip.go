package util

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

type ZipEntry struct {
	Name     string
	Content  []byte
	Modified time.Time
}

// Write entries into a zip archive in the given order, names must already be unique
func WriteZip(w io.Writer, entries []ZipEntry) error {
	archive := zip.NewWriter(w)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: entry.Modified,
		}
		if header.Modified.IsZero() {
			header.Modified = time.Now()
		}

		writer, err := archive.CreateHeader(header)
		if err != nil {
			archive.Close()
			return fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
		}

		if _, err := writer.Write(entry.Content); err != nil {
			archive.Close()
			return fmt.Errorf("failed to write %s to archive: %w", entry.Name, err)
		}
	}

	return archive.Close()
}

// UniqueNamer hands out archive entry names, appending " (n)" before the
// extension when a name was already taken.
// Example: "Resume - cv.pdf", "Resume - cv (1).pdf", "Resume - cv (2).pdf"
type UniqueNamer struct {
	taken map[string]struct{}
}

func NewUniqueNamer() *UniqueNamer {
	return &UniqueNamer{taken: make(map[string]struct{})}
}

func (un *UniqueNamer) Name(name string) string {
	key := strings.ToLower(name)
	if _, ok := un.taken[key]; !ok {
		un.taken[key] = struct{}{}
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		key := strings.ToLower(candidate)
		if _, ok := un.taken[key]; !ok {
			un.taken[key] = struct{}{}
			return candidate
		}
	}
}
