package route

import (
	appcontext "github.com/SeakMengs/DocCollect/internal/app_context"
	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/controller"
	"github.com/SeakMengs/DocCollect/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(app *appcontext.Application, _controller *controller.Controller, _middleware *middleware.Middleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// multipart parts above this size spill to temp files
	r.MaxMultipartMemory = 32 << 20

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept", constant.AdminKeyHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	V1_Checklists(rApi, _controller.Checklist, _middleware)
	V1_ChecklistFiles(rApi, _controller.File, _middleware)
	V1_Functions(rApi, _controller.Function)

	return r
}
