package util

import (
	"strings"

	"go.uber.org/zap"
)

// Json logger in production, colored console logger otherwise.
// Every entry carries the app name so logs from the api and migrate binaries can be told apart.
func NewLogger(env string) *zap.SugaredLogger {
	var base *zap.Logger
	if strings.EqualFold(env, "production") {
		base = zap.Must(zap.NewProduction())
	} else {
		base = zap.Must(zap.NewDevelopment())
	}

	return base.Sugar().With("app", GetAppName())
}
