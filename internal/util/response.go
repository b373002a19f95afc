package util

import (
	"net/http"

	constant "github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/gin-gonic/gin"
)

// Envelope of every json api response, except the /functions endpoints
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func BuildResponseSuccess(data any) Response {
	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: true,
		Message: constant.REQUEST_SUCCESSFUL,
		Data:    data,
	}
}

func ResponseSuccess(ctx *gin.Context, data any) {
	respond(ctx, http.StatusOK, BuildResponseSuccess(data))
}

func ResponseCreated(ctx *gin.Context, data any) {
	respond(ctx, http.StatusCreated, BuildResponseSuccess(data))
}

// err may be a plain error or an already built []ApiError
func BuildResponseFailed(message string, err any, data any) Response {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	switch e := err.(type) {
	case nil:
		err = []ApiError{}
	case error:
		err = GenerateErrorMessages(e)
	}

	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: false,
		Message: message,
		Errors:  err,
		Data:    data,
	}
}

func ResponseFailed(ctx *gin.Context, code int, message string, err any, data any) {
	respond(ctx, code, BuildResponseFailed(message, err, data))
}

func respond(ctx *gin.Context, code int, resp Response) {
	ctx.AbortWithStatusJSON(code, resp)
}
