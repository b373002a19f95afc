package service

import (
	"time"

	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/config"
	filestorage "github.com/SeakMengs/DocCollect/internal/file_storage"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"go.uber.org/zap"
)

type baseService struct {
	cfg        *config.Config
	repo       *repository.Repository
	storage    filestorage.Storage
	classifier classifier.Classifier
	logger     *zap.SugaredLogger
	now        func() time.Time
}

type Service struct {
	Checklist  *ChecklistService
	Upload     *UploadService
	Retrieval  *RetrievalService
	Reclassify *ReclassifyService
	Archive    *ArchiveService
	Classifier *ClassificationService
}

func NewService(cfg *config.Config, repo *repository.Repository, storage filestorage.Storage, cls classifier.Classifier, logger *zap.SugaredLogger) *Service {
	bs := &baseService{
		cfg:        cfg,
		repo:       repo,
		storage:    storage,
		classifier: cls,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}

	archive := &ArchiveService{baseService: bs}
	retrieval := &RetrievalService{baseService: bs}
	retrieval.scheduleDeletion = archive.scheduleRemoval

	return &Service{
		Checklist:  &ChecklistService{baseService: bs},
		Upload:     &UploadService{baseService: bs},
		Retrieval:  retrieval,
		Reclassify: &ReclassifyService{baseService: bs},
		Archive:    archive,
		Classifier: newClassificationService(bs),
	}
}
