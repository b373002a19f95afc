package controller

import (
	"errors"
	"net/http"

	appcontext "github.com/SeakMengs/DocCollect/internal/app_context"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index     *IndexController
	Checklist *ChecklistController
	File      *FileController
	Function  *FunctionController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:     &IndexController{baseController: bc},
		Checklist: &ChecklistController{baseController: bc},
		File:      &FileController{baseController: bc},
		Function:  &FunctionController{baseController: bc},
	}
}

// Map a service error onto the response envelope
func (b *baseController) handleServiceError(ctx *gin.Context, err error, field string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, field), nil)
	case errors.Is(err, service.ErrNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, "Not found", util.GenerateErrorMessages(err, field), nil)
	case errors.Is(err, service.ErrForbidden):
		util.ResponseFailed(ctx, http.StatusForbidden, "Invalid admin key", util.GenerateErrorMessages(err, "key"), nil)
	case errors.Is(err, service.ErrConflict):
		util.ResponseFailed(ctx, http.StatusConflict, "Item already has a file", util.GenerateErrorMessages(err, "itemId"), nil)
	case errors.Is(err, service.ErrStorage):
		b.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Storage error", util.GenerateErrorMessages(err), nil)
	default:
		b.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
	}
}
