package controller

import (
	"net/http"

	"github.com/SeakMengs/DocCollect/internal/middleware"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	*baseController
}

func (cc ChecklistController) CreateChecklist(ctx *gin.Context) {
	type Item struct {
		Title       string `json:"title" binding:"required,strNotEmpty,cmax=100"`
		Description string `json:"description" binding:"cmax=300"`
	}
	type Request struct {
		Items []Item `json:"items" binding:"required,min=1,max=10,dive"`
	}
	var body Request

	if err := ctx.ShouldBindJSON(&body); err != nil {
		cc.app.Logger.Debugf("Invalid create checklist request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	items := make([]service.ChecklistItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, service.ChecklistItemInput{Title: item.Title, Description: item.Description})
	}

	checklist, err := cc.app.Service.Checklist.Create(ctx, items)
	if err != nil {
		cc.handleServiceError(ctx, err, "items")
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"checklist": gin.H{
			"id":         checklist.ID,
			"slug":       checklist.Slug,
			"adminKey":   checklist.AdminKey,
			"publicUrl":  checklist.PublicURL,
			"managerUrl": checklist.ManagerURL,
			"items":      checklist.Items,
		},
	})
}

// Public page. A key may be passed to get the manager view, a wrong key is rejected.
func (cc ChecklistController) GetChecklist(ctx *gin.Context) {
	view, err := cc.app.Service.Checklist.Get(ctx, ctx.Param("slug"), middleware.ReadAdminKey(ctx))
	if err != nil {
		cc.handleServiceError(ctx, err, "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"checklist": view,
	})
}

// Behind AdminKeyMiddleware
func (cc ChecklistController) GetManagedChecklist(ctx *gin.Context) {
	checklist, ok := middleware.GetChecklist(ctx)
	if !ok {
		util.ResponseFailed(ctx, http.StatusForbidden, "Invalid admin key", nil, nil)
		return
	}

	view, err := cc.app.Service.Checklist.Get(ctx, checklist.Slug, checklist.AdminKey)
	if err != nil {
		cc.handleServiceError(ctx, err, "slug")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"checklist": view,
	})
}
