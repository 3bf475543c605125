// Package server assembles the HTTP surface of the item service.
package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpo/jpo/backend/item-service/handlers"
	edithandler "github.com/jpo/jpo/backend/item-service/internal/edit/handler"
	editservice "github.com/jpo/jpo/backend/item-service/internal/edit/service"
	itemhandler "github.com/jpo/jpo/backend/item-service/internal/item/handler"
	itemservice "github.com/jpo/jpo/backend/item-service/internal/item/service"
	"github.com/jpo/jpo/backend/item-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries everything NewRouter wires together.
type Options struct {
	Items itemservice.Service
	Edits editservice.Service

	// Ready gates the data routes. Nil means always ready.
	Ready func() bool
	// Checks are reported by /ready; every check must pass for a 200.
	Checks map[string]func() bool

	// RateLimiter is applied globally when set.
	RateLimiter gin.HandlerFunc

	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer  prometheus.Gatherer
	StartTime time.Time
}

func NewRouter(opts Options) *gin.Engine {
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	if opts.Ready == nil {
		opts.Ready = func() bool { return true }
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS())
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(opts.Checks, opts.StartTime))

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	} else {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	handlers.RegisterSwagger(r)

	api := r.Group("/", middleware.RequireReady(opts.Ready))
	itemhandler.RegisterItemRoutes(api, opts.Items)
	edithandler.RegisterEditRoutes(api, opts.Edits)
	return r
}

func readyHandler(checks map[string]func() bool, start time.Time) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ready := true
		deps := make(map[string]bool, len(names))
		for _, name := range names {
			ok := checks[name]()
			deps[name] = ok
			ready = ready && ok
		}
		uptime := time.Since(start).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
