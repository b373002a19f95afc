package route

import (
	"github.com/SeakMengs/DocCollect/internal/controller"
	"github.com/SeakMengs/DocCollect/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_ChecklistFiles(r *gin.RouterGroup, fc *controller.FileController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/checklists/:slug/files")
	{
		v1.POST("", fc.UploadFile)
	}

	manage := r.Group("/v1/checklists/:slug/files")
	manage.Use(middleware.AdminKeyMiddleware)
	{
		manage.GET("/:fileId/download", fc.GetFileDownloadURL)
		manage.PATCH("/:fileId", fc.MoveFile)
		manage.DELETE("", fc.DeleteFiles)
	}
}
