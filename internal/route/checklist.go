package route

import (
	"github.com/SeakMengs/DocCollect/internal/controller"
	"github.com/SeakMengs/DocCollect/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Checklists(r *gin.RouterGroup, cc *controller.ChecklistController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/checklists")
	{
		v1.POST("", cc.CreateChecklist)
		v1.GET("/:slug", cc.GetChecklist)
		v1.GET("/:slug/manage", middleware.AdminKeyMiddleware, cc.GetManagedChecklist)
	}
}
