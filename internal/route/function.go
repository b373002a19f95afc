package route

import (
	"github.com/SeakMengs/DocCollect/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Functions(r *gin.RouterGroup, fc *controller.FunctionController) {
	v1 := r.Group("/v1/functions")
	{
		v1.POST("/create-zip", fc.CreateZip)
		v1.POST("/classify-document", fc.ClassifyDocument)
	}
}
