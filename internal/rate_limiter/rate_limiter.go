package ratelimiter

import (
	"time"

	"github.com/SeakMengs/DocCollect/internal/config"
	"go.uber.org/zap"
)

// Limiter decides per client key whether a request may proceed.
// When it may not, Allow also returns how long until the key is admitted again.
type Limiter interface {
	Enabled() bool
	Allow(key string) (bool, time.Duration)
	// Drops state of keys whose window has passed
	Cleanup()
}

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) Limiter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return NewFixedWindowLimiter(cfg, logger)
}
