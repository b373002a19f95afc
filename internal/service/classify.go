package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/SeakMengs/DocCollect/internal/classifier"
)

const maxFetchRedirects = 3

var (
	ErrFetchNotAllowed = fmt.Errorf("%w: fileUrl points to a host that is not allowed", ErrValidation)
	errFetchFailed     = errors.New("failed to download document")
	errBlockedAddress  = errors.New("address is not allowed")
)

// Classifies a document reachable by url against caller supplied candidates.
// Only hosts from Classifier.FetchAllowedHosts are fetched.
type ClassificationService struct {
	*baseService
	client *http.Client
}

func newClassificationService(bs *baseService) *ClassificationService {
	cs := &ClassificationService{baseService: bs}

	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: cs.checkDialAddress}
	cs.client = &http.Client{
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxFetchRedirects {
				return errors.New("too many redirects")
			}
			return cs.checkFetchURL(req.URL)
		},
	}

	return cs
}

// Result is always usable: on failure it is unclassified and err says why.
func (cs ClassificationService) ClassifyURL(ctx context.Context, fileURL string, candidates []classifier.Candidate) (classifier.Result, error) {
	if len(candidates) == 0 {
		return classifier.Unclassified(), fmt.Errorf("%w: missing or invalid items parameter", ErrValidation)
	}

	if cs.cfg.Classifier.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cs.cfg.Classifier.Timeout)
		defer cancel()
	}

	doc, err := cs.download(ctx, fileURL)
	if err != nil {
		return classifier.Unclassified(), err
	}

	result, err := cs.classifier.Classify(ctx, doc, candidates)
	if err != nil {
		cs.logger.Errorf("Classification of %s failed: %v", doc.Filename, err)
		return classifier.Unclassified(), err
	}

	return ensureCandidate(result, candidates), nil
}

// Errors returned to the caller never carry the upstream status or dial error.
func (cs ClassificationService) download(ctx context.Context, fileURL string) (classifier.Document, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return classifier.Document{}, fmt.Errorf("%w: invalid fileUrl", ErrValidation)
	}
	if err := cs.checkFetchURL(u); err != nil {
		cs.logger.Infof("Refused to fetch %s for classification: %v", u.Redacted(), err)
		return classifier.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return classifier.Document{}, fmt.Errorf("%w: invalid fileUrl", ErrValidation)
	}

	resp, err := cs.client.Do(req)
	if err != nil {
		cs.logger.Errorf("Failed to download %s for classification: %v", u.Redacted(), err)
		if errors.Is(err, errBlockedAddress) || errors.Is(err, ErrFetchNotAllowed) {
			return classifier.Document{}, ErrFetchNotAllowed
		}
		return classifier.Document{}, errFetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cs.logger.Errorf("Failed to download %s for classification: %s", u.Redacted(), resp.Status)
		return classifier.Document{}, errFetchFailed
	}

	limit := cs.cfg.Classifier.MaxFetchBytes
	content, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		cs.logger.Errorf("Failed to read %s for classification: %v", u.Redacted(), err)
		return classifier.Document{}, errFetchFailed
	}
	if int64(len(content)) > limit {
		return classifier.Document{}, fmt.Errorf("%w: document is larger than %d bytes", ErrValidation, limit)
	}

	return classifier.Document{Filename: path.Base(u.Path), Content: content}, nil
}

// Allowed entries are "host" or "host:port", compared case-insensitively
func (cs ClassificationService) checkFetchURL(u *url.URL) error {
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: invalid fileUrl", ErrValidation)
	}

	hostPort := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())
	for _, allowed := range cs.cfg.Classifier.FetchAllowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed != "" && (allowed == hostPort || allowed == hostname) {
			return nil
		}
	}

	return ErrFetchNotAllowed
}

// Runs for every connection after name resolution, so an allowed name that resolves
// to an internal address is refused as well.
func (cs ClassificationService) checkDialAddress(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}

	ip := net.ParseIP(host)
	switch {
	case ip == nil:
		return errBlockedAddress
	case ip.IsUnspecified(), ip.IsMulticast(), ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return errBlockedAddress
	case (ip.IsLoopback() || ip.IsPrivate()) && !cs.cfg.Classifier.FetchAllowPrivate:
		return errBlockedAddress
	}

	return nil
}
