package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/middleware"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/gin-gonic/gin"
)

type FileController struct {
	*baseController
}

const (
	ErrFileRequired       = "exactly one pdf file is required in the file field"
	ErrFileNotPdf         = "only pdf files are accepted"
	ErrFileTooLarge       = "file must be at most %d MB"
	ErrFileInvalidPdf     = "file could not be read as a pdf"
	multipartFormOverhead = 1 << 20
)

// Multipart upload with a "file" part and an optional "itemId".
// Without itemId the document is routed by the classifier.
func (fc FileController) UploadFile(ctx *gin.Context) {
	maxSize := fc.app.Config.Upload.MaxFileSize
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxSize+multipartFormOverhead)

	form, err := ctx.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrFileTooLarge, maxSize>>20), "file"), nil)
			return
		}
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrFileRequired), "file"), nil)
		return
	}

	files := form.File["file"]
	if len(files) != 1 {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrFileRequired), "file"), nil)
		return
	}
	fileHeader := files[0]

	if fileHeader.Size > maxSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrFileTooLarge, maxSize>>20), "file"), nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), constant.PdfContentType) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file type", util.GenerateErrorMessages(errors.New(ErrFileNotPdf), "file"), nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		fc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	if _, err := util.ValidatePdf(src); err != nil {
		fc.app.Logger.Debugf("Rejected upload %s: %v", fileHeader.Filename, err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid pdf", util.GenerateErrorMessages(errors.New(ErrFileInvalidPdf), "file"), nil)
		return
	}

	var itemID *string
	if values := form.Value["itemId"]; len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		id := strings.TrimSpace(values[0])
		itemID = &id
	}

	file, err := fc.app.Service.Upload.Upload(ctx, ctx.Param("slug"), service.UploadInput{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: constant.PdfContentType,
		Content:     src,
		ItemID:      itemID,
	})
	if err != nil {
		fc.handleServiceError(ctx, err, "file")
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"file": file,
	})
}

// Behind AdminKeyMiddleware
func (fc FileController) GetFileDownloadURL(ctx *gin.Context) {
	checklist, _ := middleware.GetChecklist(ctx)

	link, err := fc.app.Service.Retrieval.FileDownloadURL(ctx, checklist.Slug, ctx.Param("fileId"))
	if err != nil {
		fc.handleServiceError(ctx, err, "fileId")
		return
	}

	util.ResponseSuccess(ctx, link)
}

// Behind AdminKeyMiddleware. A null or empty itemId moves the file to unclassified.
func (fc FileController) MoveFile(ctx *gin.Context) {
	type Request struct {
		ItemID *string `json:"itemId"`
	}
	var body Request

	checklist, _ := middleware.GetChecklist(ctx)

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "itemId"), nil)
		return
	}

	itemID := body.ItemID
	if itemID != nil && strings.TrimSpace(*itemID) == "" {
		itemID = nil
	}

	file, err := fc.app.Service.Reclassify.MoveFile(ctx, checklist.Slug, ctx.Param("fileId"), itemID)
	if err != nil {
		fc.handleServiceError(ctx, err, "fileId")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"file": file,
	})
}

// Behind AdminKeyMiddleware
func (fc FileController) DeleteFiles(ctx *gin.Context) {
	type Request struct {
		FileIDs []string `json:"fileIds" binding:"required,min=1,dive,strNotEmpty"`
	}
	var body Request

	checklist, _ := middleware.GetChecklist(ctx)

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "fileIds"), nil)
		return
	}

	deleted, err := fc.app.Service.Reclassify.DeleteFiles(ctx, checklist.Slug, body.FileIDs)
	if err != nil {
		fc.handleServiceError(ctx, err, "fileIds")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": deleted,
	})
}
