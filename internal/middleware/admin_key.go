package middleware

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/gin-gonic/gin"
)

// Admin key from the X-Admin-Key header, falling back to ?key=
func ReadAdminKey(ctx *gin.Context) string {
	if key := ctx.GetHeader(constant.AdminKeyHeader); key != "" {
		return key
	}
	return ctx.Query(constant.AdminKeyQuery)
}

// Guards manager routes of /:slug, the resolved checklist is stored in the gin context
func (m Middleware) AdminKeyMiddleware(ctx *gin.Context) {
	slug := ctx.Param("slug")

	checklist, err := m.app.Service.Checklist.Authorize(ctx, slug, ReadAdminKey(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Checklist not found", util.GenerateErrorMessages(err, "slug"), nil)
		case errors.Is(err, service.ErrForbidden):
			m.app.Logger.Debugf("Rejected admin key for checklist %s", slug)
			util.ResponseFailed(ctx, http.StatusForbidden, "Invalid admin key", util.GenerateErrorMessages(err, "key"), nil)
		default:
			m.app.Logger.Errorf("Failed to authorize checklist %s: %v", slug, err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	ctx.Set(constant.ContextChecklistKey, checklist)
	ctx.Next()
}

func GetChecklist(ctx *gin.Context) (*model.Checklist, bool) {
	value, exists := ctx.Get(constant.ContextChecklistKey)
	if !exists {
		return nil, false
	}
	checklist, ok := value.(*model.Checklist)
	return checklist, ok
}
