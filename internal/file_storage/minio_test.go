package filestorage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) *MinioStorage {
	t.Helper()

	client, err := NewMinioClient(&config.MinioConfig{
		ENDPOINT:   "127.0.0.1:9000",
		ACCESS_KEY: "minio",
		SECRET_KEY: "minio-secret",
		BUCKET:     "doccollect",
	})
	if err != nil {
		t.Fatalf("NewMinioClient() error = %v", err)
	}

	return NewMinioStorage(client, "doccollect", zap.NewNop().Sugar())
}

func TestPresignedGetURL(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name         string
		downloadName string
		wantDisp     string
	}{
		{name: "with download name", downloadName: "Resume - cv.pdf", wantDisp: `attachment; filename="Resume - cv.pdf"`},
		{name: "without download name", downloadName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := storage.PresignedGetURL(context.Background(), "abc/file.pdf", time.Hour, tt.downloadName)
			if err != nil {
				t.Fatalf("PresignedGetURL() error = %v", err)
			}

			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}
			if !strings.HasSuffix(u.Path, "/doccollect/abc/file.pdf") {
				t.Errorf("path = %s", u.Path)
			}
			if got := u.Query().Get("X-Amz-Expires"); got != "3600" {
				t.Errorf("X-Amz-Expires = %s, want 3600", got)
			}
			if got := u.Query().Get("response-content-disposition"); got != tt.wantDisp {
				t.Errorf("response-content-disposition = %q, want %q", got, tt.wantDisp)
			}
		})
	}
}

func TestTranslateMinioError(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	if err := translateMinioError("a.pdf", missing); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("translateMinioError(NoSuchKey) = %v, want ErrObjectNotFound", err)
	}

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	if err := translateMinioError("a.pdf", denied); errors.Is(err, ErrObjectNotFound) {
		t.Errorf("translateMinioError(AccessDenied) = %v, should not be ErrObjectNotFound", err)
	}
}

func TestRemoveNoKeys(t *testing.T) {
	storage := newTestStorage(t)
	if err := storage.Remove(context.Background()); err != nil {
		t.Errorf("Remove() with no keys error = %v", err)
	}
}
