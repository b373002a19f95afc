package appcontext

import (
	"github.com/SeakMengs/DocCollect/internal/config"
	filestorage "github.com/SeakMengs/DocCollect/internal/file_storage"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"github.com/SeakMengs/DocCollect/internal/service"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Service runs the upload, retrieval and reclassification flows on top of Repository and Storage.
	Service *service.Service

	// Storage holds the uploaded pdfs and generated archives.
	Storage filestorage.Storage
}
