// Package api wires the gin HTTP façade: CRUD over item categories,
// members, and constraints, plus the /solve endpoint — grounded on
// original_source/src/routes/*.rs for the route shapes and the
// teacher's pkg/api/server.go for the gin setup idiom (middleware
// order, gin.New()+Recovery, static file serving), trimmed of the
// teacher's auth/websocket/proxy surface this spec has no use for.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/khryptorgraphics/schedcore/internal/config"
	"github.com/khryptorgraphics/schedcore/internal/store"
)

// Handler holds the dependencies every route needs.
type Handler struct {
	store  *store.Store
	logger zerolog.Logger
	solver config.SolverConfig
}

// NewRouter builds the complete gin engine: middleware, CRUD routes,
// /solve, and the static landing page.
func NewRouter(st *store.Store, logger zerolog.Logger, cfg config.ServerConfig, solverDefaults config.SolverConfig) *gin.Engine {
	h := &Handler{store: st, logger: logger, solver: solverDefaults}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLoggingMiddleware(logger))
	router.Use(securityHeadersMiddleware())
	router.Use(rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/items", h.createItem)
		v1.GET("/items", h.listItems)
		v1.PUT("/items/:item_name", h.updateItem)
		v1.DELETE("/items/:item_name", h.deleteItem)

		v1.POST("/items/:item_name/members", h.addMember)
		v1.GET("/items/:item_name/members", h.listMembers)
		v1.PUT("/items/:item_name/members/:member_id", h.updateMember)
		v1.DELETE("/items/:item_name/members/:member_id", h.deleteMember)

		v1.POST("/constraints", h.createConstraint)
		v1.GET("/constraints", h.listConstraints)
		v1.PUT("/constraints/:name", h.updateConstraint)
		v1.DELETE("/constraints/:name", h.deleteConstraint)

		v1.POST("/solve", h.solve)
		v1.GET("/health", h.health)
	}

	router.Static("/public", cfg.StaticDir)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/public/index.html")
	})

	return router
}

// rateLimitMiddleware enforces a per-client-IP token bucket, grounded
// on golang.org/x/time/rate rather than the teacher's header-only
// stub — the teacher's rateLimitMiddleware in pkg/api/server.go sets
// X-RateLimit-* headers but never actually enforces a limit; this
// version does.
func rateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := newIPLimiterStore(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		limiter := limiters.get(c.ClientIP())
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// securityHeadersMiddleware sets a conservative set of response
// headers, trimmed from the teacher's inputValidationMiddleware header
// block down to the subset that makes sense for a JSON API with no
// embedded third-party content.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
