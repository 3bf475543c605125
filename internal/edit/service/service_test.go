package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jpo/jpo/backend/item-service/internal/edit/repository"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type brokenRepo struct{}

func (brokenRepo) Insert(ctx context.Context, rec *models.EditRecord) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("not primary")
}

func TestSubmit_StampsDateAndRenamesFields(t *testing.T) {
	repo := repository.NewMemoryRepo()
	// 23:30 at UTC-05:00 is already the next day in UTC
	clock := func() time.Time { return time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)) }
	svc := New(repo, clock)

	id, err := svc.Submit(context.Background(), Submission{OrigID: "abc", TN: "hello", EN: "bonjour"})
	require.NoError(t, err)
	require.Len(t, id, 24)

	recs := repo.List()
	require.Len(t, recs, 1)
	rec := recs[0]
	require.Equal(t, id, rec.ID.Hex())
	require.Equal(t, "abc", rec.OrigID)
	require.Equal(t, "hello", rec.ModifiedTN)
	require.Equal(t, "bonjour", rec.ModifiedEN)
	require.Nil(t, rec.Status)
	require.Equal(t, "2026-10-18", rec.CreatedAt)
}

func TestSubmit_StatusNormalization(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status interface{}
		want   interface{}
	}{
		{"absent", nil, nil},
		{"empty string", "", nil},
		{"false", false, nil},
		{"integer zero", int64(0), nil},
		{"float zero", float64(0), nil},
		{"text", "approved", "approved"},
		{"true", true, true},
		{"number", int64(2), int64(2)},
		{"object", map[string]interface{}{}, map[string]interface{}{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := repository.NewMemoryRepo()
			_, err := New(repo, nil).Submit(context.Background(), Submission{Status: tc.status})
			require.NoError(t, err)

			rec := repo.List()[0]
			require.Equal(t, tc.want, rec.Status)
			require.Equal(t, time.Now().UTC().Format(DateLayout), rec.CreatedAt)
		})
	}
}

func TestSubmit_RepositoryError(t *testing.T) {
	svc := New(brokenRepo{}, nil)
	_, err := svc.Submit(context.Background(), Submission{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not primary")
}
