package server

import (
	"context"
	"net/http"
	"time"

	"portfolio/internal/comments"
	"portfolio/internal/contact"
	"portfolio/internal/gallery"
	"portfolio/internal/github"
	"portfolio/internal/middleware"
	"portfolio/internal/subscribe"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 3 * time.Second

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(s.deps.Logger))
	r.Use(middleware.CORS(s.deps.AllowOrigins))

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)

	api := r.Group("/api")

	commentSvc := comments.NewService(s.deps.Comments)
	comments.RegisterRoutes(api, comments.NewHandler(commentSvc, s.deps.Logger))

	contact.RegisterRoutes(api, contact.NewHandler(s.deps.Email, s.deps.ContactRecipient, s.deps.Logger))
	subscribe.RegisterRoutes(api, subscribe.NewHandler(s.deps.Subscriber, s.deps.AudienceID, s.deps.Logger))
	github.RegisterRoutes(api, github.NewHandler(s.deps.GitHub, s.deps.Logger))
	gallery.RegisterRoutes(api, gallery.NewHandler(s.deps.Storage, s.deps.GalleryPrefix, s.deps.Logger))

	return r
}

func (s *Server) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "portfolio api"})
}

// healthHandler reports 503 only when the comment store is unreachable;
// the cache and storage are auxiliary.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	response := gin.H{"status": "ok"}

	if p, ok := s.deps.Comments.(comments.Pinger); ok {
		store := check(ctx, p.Ping)
		if store["status"] != "up" {
			status = http.StatusServiceUnavailable
			response["status"] = "degraded"
		}
		response["comments"] = store
	}
	if s.deps.Cache != nil {
		response["cache"] = check(ctx, s.deps.Cache.Ping)
	}
	if s.deps.Storage != nil {
		response["storage"] = check(ctx, s.deps.Storage.Health)
	}

	c.JSON(status, response)
}

func check(ctx context.Context, fn func(context.Context) error) gin.H {
	if err := fn(ctx); err != nil {
		return gin.H{"status": "down", "error": err.Error()}
	}
	return gin.H{"status": "up"}
}
