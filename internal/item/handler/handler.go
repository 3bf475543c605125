package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/item/service"
	"github.com/jpo/jpo/backend/item-service/pkg/logger"
	"github.com/jpo/jpo/backend/item-service/pkg/metrics"
)

func RegisterItemRoutes(r gin.IRoutes, svc service.Service) {
	r.GET("/item", func(c *gin.Context) {
		page, err := svc.NextPage(c.Request.Context())
		switch {
		case errors.Is(err, service.ErrEmptyResult):
			metrics.PagesServed.WithLabelValues("empty").Inc()
			c.JSON(http.StatusNotFound, gin.H{"detail": "Items not found"})
			return
		case errors.Is(err, database.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service Unavailable"})
			return
		case err != nil:
			metrics.PagesServed.WithLabelValues("error").Inc()
			logger.Errorf("Error fetching items: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
			return
		}
		metrics.PagesServed.WithLabelValues("served").Inc()
		logger.Debugf("served %d items from offset %d", len(page.Entries), page.Offset)
		c.JSON(http.StatusOK, page.Entries)
	})

	// read-only view of the shared cursor
	r.GET("/cursor", func(c *gin.Context) {
		pos, err := svc.Position(c.Request.Context())
		switch {
		case errors.Is(err, cursor.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Cursor not found"})
			return
		case errors.Is(err, database.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service Unavailable"})
			return
		case err != nil:
			logger.Errorf("Error reading cursor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": pos, "page_size": cursor.PageSize})
	})
}
