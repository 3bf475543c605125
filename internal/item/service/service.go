package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/jpo/jpo/backend/item-service/internal/item"
	"github.com/jpo/jpo/backend/item-service/internal/item/repository"
)

// ErrEmptyResult means the allocated window held no items. The cursor has
// already advanced when this is returned.
var ErrEmptyResult = errors.New("items not found")

// Service defines the item operations used by the handler layer.
type Service interface {
	// NextPage allocates an offset from the shared cursor and returns that window.
	NextPage(ctx context.Context) (*item.Page, error)
	// Position reports the offset the next NextPage call would start at.
	Position(ctx context.Context) (int64, error)
}

func New(alloc cursor.Allocator, repo repository.Repository) Service {
	return &pager{alloc: alloc, repo: repo}
}

type pager struct {
	alloc cursor.Allocator
	repo  repository.Repository
}

func (p *pager) NextPage(ctx context.Context) (*item.Page, error) {
	offset, err := p.alloc.Allocate(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate page: %w", err)
	}
	// no rollback: a failed read below leaves the cursor advanced
	items, err := p.repo.Window(ctx, offset, cursor.PageSize)
	if err != nil {
		return nil, fmt.Errorf("read window at %d: %w", offset, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("window at %d: %w", offset, ErrEmptyResult)
	}

	page := &item.Page{Offset: offset, Entries: make([]item.Entry, 0, len(items))}
	for i, it := range items {
		tn, err := item.FieldJSON(it.TN)
		if err != nil {
			return nil, fmt.Errorf("item %d tn: %w", offset+int64(i), err)
		}
		en, err := item.FieldJSON(it.EN)
		if err != nil {
			return nil, fmt.Errorf("item %d en: %w", offset+int64(i), err)
		}
		page.Entries = append(page.Entries, item.Entry{
			Item: item.Pair{TN: tn, EN: en},
			ID:   offset + int64(i),
		})
	}
	return page, nil
}

func (p *pager) Position(ctx context.Context) (int64, error) {
	return p.alloc.Peek(ctx)
}
