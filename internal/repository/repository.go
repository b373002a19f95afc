package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type baseRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

type Repository struct {
	// DB can be used for transaction. Example usage:
	// tx := r.DB.Begin()
	// defer tx.Commit()
	// Then pass tx to the repository function. and use tx.Rollback() if error occurred
	DB               *gorm.DB
	Checklist        *ChecklistRepository
	ChecklistItem    *ChecklistItemRepository
	ChecklistFile    *ChecklistFileRepository
	TemporaryArchive *TemporaryArchiveRepository

	base *baseRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger) *baseRepository {
	return &baseRepository{db: db, logger: logger}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger) *Repository {
	br := newBaseRepository(db, logger)

	return &Repository{
		DB:               db,
		Checklist:        &ChecklistRepository{baseRepository: br},
		ChecklistItem:    &ChecklistItemRepository{baseRepository: br},
		ChecklistFile:    &ChecklistFileRepository{baseRepository: br},
		TemporaryArchive: &TemporaryArchiveRepository{baseRepository: br},
		base:             br,
	}
}

// Run fn inside a transaction, rolled back when fn returns an error or panics.
// Docs: https://gorm.io/docs/transactions.html#Transaction
func (r Repository) WithTx(fn func(tx *gorm.DB) error) error {
	return r.base.withTx(r.DB, fn)
}

func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Debugf("withTx Transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}
