package api

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/khryptorgraphics/schedcore/internal/logging"
)

// requestLoggingMiddleware stamps every request with a correlation id
// and logs method/path/status/latency on completion, the gin
// equivalent of the teacher's gin.Logger() but routed through zerolog
// and carrying a request id, per
// pkg/logging/kubernetes.go's WithCorrelationID pattern.
func requestLoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := logging.NewRequestID()
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()

		logging.WithRequest(logger, ctx).Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// ipLimiterStore is a per-client-IP rate.Limiter pool, grounded on the
// token-bucket pattern golang.org/x/time/rate is built for — the
// teacher's own rate limiter only sets headers without enforcing a
// limit, so this is an enrichment adopted from the pack's dependency
// surface rather than a straight port.
type ipLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiterStore(rps rate.Limit, burst int) *ipLimiterStore {
	return &ipLimiterStore{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (s *ipLimiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}
