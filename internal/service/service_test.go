package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/SeakMengs/DocCollect/internal/database"
	filestorage "github.com/SeakMengs/DocCollect/internal/file_storage"
	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"go.uber.org/zap"
)

type memoryStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failGet   map[string]bool
	failPut   bool
	removed   []string
	presigned []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, failGet: map[string]bool{}}
}

func (m *memoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.failPut {
		return errors.New("storage unavailable")
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = content
	return nil
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet[key] {
		return nil, errors.New("connection reset")
	}
	content, ok := m.objects[key]
	if !ok {
		return nil, filestorage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *memoryStorage) Remove(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.objects, key)
		m.removed = append(m.removed, key)
	}
	return nil
}

func (m *memoryStorage) PresignedGetURL(ctx context.Context, key string, expiry time.Duration, downloadName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presigned = append(m.presigned, key)
	return fmt.Sprintf("https://storage.test/%s?expires=%d&name=%s", key, int(expiry.Seconds()), downloadName), nil
}

func (m *memoryStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type fakeClassifier struct {
	mu         sync.Mutex
	answer     func(candidates []classifier.Candidate) (classifier.Result, error)
	calls      int
	candidates []classifier.Candidate
}

func (f *fakeClassifier) Classify(ctx context.Context, doc classifier.Document, candidates []classifier.Candidate) (classifier.Result, error) {
	f.mu.Lock()
	f.calls++
	f.candidates = candidates
	f.mu.Unlock()

	if f.answer == nil {
		return classifier.Unclassified(), nil
	}
	return f.answer(candidates)
}

func answerID(id string) func([]classifier.Candidate) (classifier.Result, error) {
	return func([]classifier.Candidate) (classifier.Result, error) {
		return classifier.Result{Status: "uploaded", ItemID: &id}, nil
	}
}

type testEnv struct {
	cfg        *config.Config
	svc        *Service
	repo       *repository.Repository
	storage    *memoryStorage
	classifier *fakeClassifier
	scheduled  []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.ConnectInMemory()
	if err != nil {
		t.Fatalf("ConnectInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDb, err := db.DB(); err == nil {
			sqlDb.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{
		Classifier: config.ClassifierConfig{Timeout: time.Second, MaxFetchBytes: 1 << 20},
		Upload:     config.UploadConfig{MaxFileSize: 1 << 20, SignedURLExpiry: time.Hour},
		Archive:    config.ArchiveConfig{TTL: time.Hour},
	}

	env := &testEnv{
		cfg:        cfg,
		repo:       repository.NewRepository(db, logger),
		storage:    newMemoryStorage(),
		classifier: &fakeClassifier{},
	}
	env.svc = NewService(cfg, env.repo, env.storage, env.classifier, logger)
	env.svc.Retrieval.scheduleDeletion = func(key string, after time.Duration) {
		env.scheduled = append(env.scheduled, key)
	}

	return env
}

func (e *testEnv) createChecklist(t *testing.T, titles ...string) *model.Checklist {
	t.Helper()

	items := make([]ChecklistItemInput, 0, len(titles))
	for _, title := range titles {
		items = append(items, ChecklistItemInput{Title: title, Description: title + " document"})
	}

	checklist, err := e.svc.Checklist.Create(context.Background(), items)
	if err != nil {
		t.Fatalf("Checklist.Create() error = %v", err)
	}
	return checklist
}

func (e *testEnv) upload(t *testing.T, slug, filename string, itemID *string) (*model.ChecklistFile, error) {
	t.Helper()

	content := []byte("%PDF-1.4 " + filename)
	return e.svc.Upload.Upload(context.Background(), slug, UploadInput{
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Content:     bytes.NewReader(content),
		ItemID:      itemID,
	})
}

func strPtr(s string) *string {
	return &s
}
