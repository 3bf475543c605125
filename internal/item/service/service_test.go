package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/jpo/jpo/backend/item-service/internal/item/repository"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func items(n int) []models.SourceItem {
	out := make([]models.SourceItem, n)
	for i := range out {
		out[i] = models.NewSourceItem(fmt.Sprintf("tn-%d", i), fmt.Sprintf("en-%d", i))
	}
	return out
}

// failingRepo lets a test break the window read after the cursor moved.
type failingRepo struct{ err error }

func (f *failingRepo) Window(ctx context.Context, offset, limit int64) ([]models.SourceItem, error) {
	return nil, f.err
}

func TestNextPage_SequentialIDsFromOffset(t *testing.T) {
	alloc := cursor.NewMemoryAllocator(0)
	svc := New(alloc, repository.NewMemoryRepo(items(45)...))
	ctx := context.Background()

	page, err := svc.NextPage(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), page.Offset)
	require.Len(t, page.Entries, 20)
	for i, e := range page.Entries {
		require.Equal(t, int64(i), e.ID)
		require.JSONEq(t, fmt.Sprintf("%q", fmt.Sprintf("tn-%d", i)), string(e.Item.TN))
	}

	second, err := svc.NextPage(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(20), second.Entries[0].ID)
	// sequential calls never overlap
	require.Greater(t, second.Entries[0].ID, page.Entries[len(page.Entries)-1].ID)

	third, err := svc.NextPage(ctx)
	require.NoError(t, err)
	require.Len(t, third.Entries, 5)
	require.Equal(t, int64(44), third.Entries[4].ID)
}

func TestNextPage_EmptyWindowStillAdvances(t *testing.T) {
	// cursor at 40 and only 25 items: nothing at or after position 40
	alloc := cursor.NewMemoryAllocator(40)
	svc := New(alloc, repository.NewMemoryRepo(items(25)...))

	_, err := svc.NextPage(context.Background())
	require.ErrorIs(t, err, ErrEmptyResult)

	pos, err := svc.Position(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(60), pos)
}

func TestNextPage_MissingCursor(t *testing.T) {
	svc := New(&cursor.MemoryAllocator{}, repository.NewMemoryRepo(items(5)...))
	_, err := svc.NextPage(context.Background())
	require.ErrorIs(t, err, cursor.ErrNotFound)
	require.NotErrorIs(t, err, ErrEmptyResult)
}

func TestNextPage_ReadFailureLeavesCursorAdvanced(t *testing.T) {
	boom := errors.New("connection reset")
	alloc := cursor.NewMemoryAllocator(20)
	svc := New(alloc, &failingRepo{err: boom})

	_, err := svc.NextPage(context.Background())
	require.ErrorIs(t, err, boom)

	pos, _ := alloc.Peek(context.Background())
	require.Equal(t, int64(40), pos)
}

func TestNextPage_PassesFieldsThroughUnchanged(t *testing.T) {
	src := repository.NewMemoryRepo(
		models.NewSourceItem(int32(7), "seven"),
		models.NewSourceItem("only tn", nil),
		models.NewSourceItem(primitive.Null{}, bson.D{{Key: "alt", Value: "x"}}),
	)
	svc := New(cursor.NewMemoryAllocator(0), src)

	page, err := svc.NextPage(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)

	out, err := json.Marshal(page.Entries)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"item":{"tn":7,"en":"seven"},"id":0},
		{"item":{"tn":"only tn"},"id":1},
		{"item":{"tn":null,"en":{"alt":"x"}},"id":2}
	]`, string(out))
}
