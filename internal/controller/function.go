package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/gin-gonic/gin"
)

// Endpoints that keep the plain {error} style bodies instead of the response envelope
type FunctionController struct {
	*baseController
}

func (fc FunctionController) CreateZip(ctx *gin.Context) {
	type Request struct {
		Slug     string  `json:"slug"`
		AdminKey *string `json:"adminKey"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil || body.Slug == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing slug parameter"})
		return
	}

	// an empty key is treated as not supplied
	adminKey := body.AdminKey
	if adminKey != nil && *adminKey == "" {
		adminKey = nil
	}

	link, err := fc.app.Service.Retrieval.ZipDownloadURL(ctx, body.Slug, adminKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFiles):
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "No files to download"})
		case errors.Is(err, service.ErrNotFound):
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Checklist not found"})
		case errors.Is(err, service.ErrForbidden):
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin key"})
		case errors.Is(err, service.ErrStorage):
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ZIP file"})
		default:
			fc.app.Logger.Errorf("Unexpected error creating zip for %s: %v", body.Slug, err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"signedUrl": link.SignedURL})
}

type classifyResponse struct {
	classifier.Result
	Error string `json:"error,omitempty"`
}

func (fc FunctionController) ClassifyDocument(ctx *gin.Context) {
	type Request struct {
		FileURL string                 `json:"fileUrl"`
		Items   []classifier.Candidate `json:"items"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		fc.classifyFailed(ctx, http.StatusBadRequest, err)
		return
	}
	if body.FileURL == "" {
		fc.classifyFailed(ctx, http.StatusBadRequest, errors.New("missing fileUrl parameter"))
		return
	}
	if len(body.Items) == 0 {
		fc.classifyFailed(ctx, http.StatusBadRequest, errors.New("missing or invalid items parameter"))
		return
	}

	result, err := fc.app.Service.Classifier.ClassifyURL(ctx, body.FileURL, body.Items)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrValidation) {
			code = http.StatusBadRequest
		}
		fc.classifyFailed(ctx, code, err)
		return
	}

	ctx.JSON(http.StatusOK, classifyResponse{Result: result})
}

func (fc FunctionController) classifyFailed(ctx *gin.Context, code int, err error) {
	ctx.AbortWithStatusJSON(code, classifyResponse{
		Result: classifier.Unclassified(),
		Error:  fmt.Sprintf("Error during classification: %v", err),
	})
}
