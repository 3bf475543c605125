package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jpo/jpo/backend/item-service/internal/edit/repository"
	"github.com/jpo/jpo/backend/item-service/internal/models"
)

// DateLayout is the calendar-date form stored in created_at.
const DateLayout = "2006-01-02"

// Submission is a client edit. Values are stored unchanged; nil is stored as null.
type Submission struct {
	OrigID interface{}
	TN     interface{}
	EN     interface{}
	Status interface{}
}

// Service defines the edit operations used by the handler layer.
type Service interface {
	// Submit stores the edit and returns the generated id as hex.
	Submit(ctx context.Context, s Submission) (string, error)
}

// New builds a Service. now is the clock used for created_at; nil means time.Now.
func New(repo repository.Repository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &recorder{repo: repo, now: now}
}

type recorder struct {
	repo repository.Repository
	now  func() time.Time
}

func (r *recorder) Submit(ctx context.Context, s Submission) (string, error) {
	status := s.Status
	if falsy(status) {
		status = nil
	}
	rec := &models.EditRecord{
		OrigID:     s.OrigID,
		ModifiedTN: s.TN,
		ModifiedEN: s.EN,
		Status:     status,
		CreatedAt:  r.now().UTC().Format(DateLayout),
	}
	id, err := r.repo.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("submit edit: %w", err)
	}
	return id.Hex(), nil
}

// falsy reports whether a decoded JSON value is null, false, zero or "".
func falsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int64:
		return t == 0
	case float64:
		return t == 0
	}
	return false
}
