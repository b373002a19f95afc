package middleware

import (
	appcontext "github.com/SeakMengs/DocCollect/internal/app_context"
	ratelimiter "github.com/SeakMengs/DocCollect/internal/rate_limiter"
)

type Middleware struct {
	rateLimiter ratelimiter.Limiter
	app         *appcontext.Application
}

// rateLimiter may be nil, requests are then never limited
func NewMiddleware(app *appcontext.Application, rateLimiter ratelimiter.Limiter) *Middleware {
	return &Middleware{app: app, rateLimiter: rateLimiter}
}
