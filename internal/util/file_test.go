package util

import (
	"fmt"
	"testing"
	"time"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cv.pdf", "cv.pdf"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{"C:\\Users\\me\\scan.pdf", "scan.pdf"},
		{"  spaced.pdf ", "spaced.pdf"},
		{"", "document.pdf"},
		{"..", "document.pdf"},
	}

	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArchiveNames(t *testing.T) {
	at := time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC)

	if got, want := ToTemporaryArchiveKey("temp-zips", "abc", at), fmt.Sprintf("temp-zips/abc-%d.zip", at.UnixMilli()); got != want {
		t.Errorf("ToTemporaryArchiveKey() = %s, want %s", got, want)
	}
	if got := ToArchiveDownloadName("DocCollect", "abc", at); got != "DocCollect-abc-2024-06-10.zip" {
		t.Errorf("ToArchiveDownloadName() = %s", got)
	}
}
