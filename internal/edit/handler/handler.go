package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/edit/service"
	"github.com/jpo/jpo/backend/item-service/pkg/logger"
	"github.com/jpo/jpo/backend/item-service/pkg/metrics"
)

var (
	errUnreadable = errors.New("unreadable request body")
	errNotJSON    = errors.New("request body is not valid JSON")
	errNotObject  = errors.New("request body must be a JSON object or array")
)

func RegisterEditRoutes(r gin.IRoutes, svc service.Service) {
	r.POST("/write_item", func(c *gin.Context) {
		sub, err := parseSubmission(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		id, err := svc.Submit(c.Request.Context(), sub)
		if errors.Is(err, database.ErrNotReady) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service Unavailable"})
			return
		}
		if err != nil {
			logger.Errorf("Error inserting item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
			return
		}
		metrics.EditsInserted.Inc()
		c.JSON(http.StatusCreated, gin.H{"message": "Item inserted successfully", "inserted_id": id})
	})
}

// parseSubmission picks orig_id, tn, en and status out of the body without
// checking their types. Only a body that is not JSON at all is rejected. An
// empty body or a JSON array carries none of the keys, so every field is nil.
func parseSubmission(c *gin.Context) (service.Submission, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return service.Submission{}, errUnreadable
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return service.Submission{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body interface{}
	if err := dec.Decode(&body); err != nil {
		return service.Submission{}, errNotJSON
	}
	switch b := body.(type) {
	case map[string]interface{}:
		return service.Submission{
			OrigID: storable(b["orig_id"]),
			TN:     storable(b["tn"]),
			EN:     storable(b["en"]),
			Status: storable(b["status"]),
		}, nil
	case []interface{}:
		return service.Submission{}, nil
	}
	return service.Submission{}, errNotObject
}

// storable converts decoded JSON into values the BSON encoder keeps as-is.
// Integral numbers become int64, other numbers float64.
func storable(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		for k, e := range t {
			t[k] = storable(e)
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = storable(e)
		}
		return t
	}
	return v
}
