package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rake87226-cmyk/vercel-backend/logging"
	"github.com/rake87226-cmyk/vercel-backend/notify"
	"github.com/rake87226-cmyk/vercel-backend/store"
)

type api struct {
	store    *store.Store
	notifier *notify.Notifier
}

// SetupRouter registers the JSON API under /api and serves staticDir for
// everything else. An empty staticDir disables static files.
func SetupRouter(st *store.Store, notifier *notify.Notifier, staticDir string) *gin.Engine {
	h := &api{store: st, notifier: notifier}

	r := gin.New()
	r.Use(logging.RequestLogger(log.Logger), logging.Recovery(log.Logger), cors.Default())

	// Health check endpoint
	r.GET("/health", h.health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/menu", h.listMenu)

		apiGroup.POST("/orders", h.createOrder)
		apiGroup.GET("/orders", h.listOrders)

		apiGroup.POST("/reservations", h.createReservation)
		apiGroup.GET("/reservations", h.listReservations)

		apiGroup.POST("/feedback", h.createFeedback)
		apiGroup.GET("/feedback", h.listFeedback)

		apiGroup.POST("/payments", h.recordPayment)

		admin := apiGroup.Group("/admin")
		admin.GET("/orders", h.listAdminOrders)
		admin.GET("/reservations", h.listAdminReservations)
		admin.GET("/feedback", h.listFeedback)
	}

	var static http.Handler
	if staticDir != "" {
		static = http.FileServer(gin.Dir(staticDir, false))
	}
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		if static == nil {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		static.ServeHTTP(c.Writer, c.Request)
	})

	return r
}

func (h *api) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}

// bindJSON decodes the request body into dst. An empty body leaves dst at
// its zero value.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// fail reports err to the client as a 500 with its message.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
