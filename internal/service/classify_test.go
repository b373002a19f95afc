package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/constant"
)

var classifyCandidates = []classifier.Candidate{{ID: "item-1", Title: "Resume"}, {ID: "item-2", Title: "Transcript"}}

func hostOf(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", rawURL, err)
	}
	return u.Host
}

func TestClassifyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/transcript.pdf":
			w.Write([]byte("%PDF-1.4 transcript"))
		case "/files/huge.pdf":
			w.Write([]byte(strings.Repeat("x", 2<<20)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.cfg.Classifier.FetchAllowedHosts = []string{hostOf(t, srv.URL)}
	env.cfg.Classifier.FetchAllowPrivate = true
	env.classifier.answer = answerID("item-2")

	result, err := env.svc.Classifier.ClassifyURL(context.Background(), srv.URL+"/files/transcript.pdf", classifyCandidates)
	if err != nil {
		t.Fatalf("ClassifyURL() error = %v", err)
	}
	if result.Status != constant.FileStatusUploaded || result.ItemID == nil || *result.ItemID != "item-2" {
		t.Errorf("ClassifyURL() = %+v, want item-2", result)
	}

	tests := []struct {
		name       string
		url        string
		candidates []classifier.Candidate
		wantErr    error
	}{
		{name: "missing document", url: srv.URL + "/files/missing.pdf", candidates: classifyCandidates, wantErr: errFetchFailed},
		{name: "too large", url: srv.URL + "/files/huge.pdf", candidates: classifyCandidates, wantErr: ErrValidation},
		{name: "not http", url: "file:///etc/passwd", candidates: classifyCandidates, wantErr: ErrValidation},
		{name: "no candidates", url: srv.URL + "/files/transcript.pdf", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.svc.Classifier.ClassifyURL(context.Background(), tt.url, tt.candidates)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ClassifyURL() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil && strings.Contains(err.Error(), "404") {
				t.Errorf("ClassifyURL() error leaks the upstream status: %v", err)
			}
			if result.Status != constant.FileStatusUnclassified || result.ItemID != nil {
				t.Errorf("ClassifyURL() result = %+v, want unclassified", result)
			}
		})
	}
}

func TestClassifyURLRefusesUntrustedTargets(t *testing.T) {
	var hits atomic.Int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("%PDF-1.4 secret"))
	}))
	defer internal.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://metadata.internal/latest", http.StatusFound)
	}))
	defer redirector.Close()

	tests := []struct {
		name         string
		url          string
		allowed      []string
		allowPrivate bool
	}{
		{name: "loopback host not allowed", url: internal.URL + "/internal/admin", allowed: []string{"storage.example.com"}},
		{name: "port must match when listed", url: "http://storage.example.com/doc.pdf", allowed: []string{"storage.example.com:9000"}, allowPrivate: true},
		{name: "allowed loopback with private disabled", url: internal.URL + "/internal/admin", allowed: []string{hostOf(t, internal.URL)}},
		{name: "link local metadata", url: "http://169.254.169.254/latest/meta-data", allowed: []string{"169.254.169.254"}, allowPrivate: true},
		{name: "redirect to other host", url: redirector.URL + "/doc.pdf", allowed: []string{hostOf(t, redirector.URL)}, allowPrivate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.cfg.Classifier.FetchAllowedHosts = tt.allowed
			env.cfg.Classifier.FetchAllowPrivate = tt.allowPrivate
			hits.Store(0)

			result, err := env.svc.Classifier.ClassifyURL(context.Background(), tt.url, classifyCandidates)
			if !errors.Is(err, ErrFetchNotAllowed) || !errors.Is(err, ErrValidation) {
				t.Errorf("ClassifyURL() error = %v, want ErrFetchNotAllowed", err)
			}
			if hits.Load() != 0 {
				t.Errorf("internal handler was reached %d times", hits.Load())
			}
			if env.classifier.calls != 0 {
				t.Errorf("classifier called %d times", env.classifier.calls)
			}
			if result.Status != constant.FileStatusUnclassified {
				t.Errorf("ClassifyURL() result = %+v, want unclassified", result)
			}
		})
	}
}
