package resolution

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/store"
)

func floatPtr(v float64) *float64 { return &v }

// fakeRetriever serves canned search results and barcode products.
type fakeRetriever struct {
	searchResults []domain.RawRecord
	products      map[string]*domain.RawRecord

	searchCalls  int
	barcodeCalls int
}

func (f *fakeRetriever) Search(ctx context.Context, query string, limit int) []domain.RawRecord {
	f.searchCalls++
	return f.searchResults
}

func (f *fakeRetriever) LookupBarcode(ctx context.Context, code string) *domain.RawRecord {
	f.barcodeCalls++
	return f.products[code]
}

// fakeFoodStore serves a fixed per-user learned food map.
type fakeFoodStore struct {
	foods map[string]*domain.FoodRecord
	err   error
}

func (f *fakeFoodStore) GetAll(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]*domain.FoodRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.foods, nil
}

func (f *fakeFoodStore) GetByKey(
	ctx context.Context,
	userID uuid.UUID,
	key string,
) (*domain.FoodRecord, error) {
	rec, ok := f.foods[key]
	if !ok {
		return nil, store.ErrFoodNotFound
	}
	return rec, nil
}

func (f *fakeFoodStore) Upsert(ctx context.Context, record *domain.FoodRecord) error {
	if f.foods == nil {
		f.foods = make(map[string]*domain.FoodRecord)
	}
	f.foods[record.Key] = record
	return nil
}

func (f *fakeFoodStore) WithTx(tx *sql.Tx) store.FoodStore { return f }

func TestResolveEmptyQuery(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeFoodStore{}, &fakeRetriever{}, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "   ")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionNeedsManualInput, res.Status)
	assert.Equal(t, "empty_query", res.Note)
}

func TestResolveBarcode(t *testing.T) {
	t.Parallel()

	retriever := &fakeRetriever{
		products: map[string]*domain.RawRecord{
			"4601234567890": {
				Name:        "Шоколад молочный",
				KcalPer100g: floatPtr(534),
				ServingSize: "1 bar (90g)",
			},
		},
	}
	svc := NewService(&fakeFoodStore{}, retriever, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "4601234567890")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionResolved, res.Status)
	require.NotNil(t, res.Chosen)
	assert.Equal(t, "Шоколад молочный", res.Chosen.Name)
	assert.InDelta(t, 534, res.Chosen.Kcal100g, 0.001)
	assert.Equal(t, domain.CandidateSourceBarcode, res.Chosen.Source)
	assert.Equal(t, domain.MaxConfidence, res.Confidence)
	require.NotNil(t, res.Chosen.ServingGrams)
	assert.InDelta(t, 90, *res.Chosen.ServingGrams, 0.001)

	assert.Equal(t, 1, retriever.barcodeCalls)
	assert.Equal(t, 0, retriever.searchCalls)
}

func TestResolveUnknownBarcodeFallsThrough(t *testing.T) {
	t.Parallel()

	retriever := &fakeRetriever{}
	svc := NewService(&fakeFoodStore{}, retriever, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "99999999")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionNeedsManualInput, res.Status)
	assert.Equal(t, 1, retriever.barcodeCalls)
	assert.Equal(t, 1, retriever.searchCalls)
}

func TestResolveLocalExact(t *testing.T) {
	t.Parallel()

	foodStore := &fakeFoodStore{
		foods: map[string]*domain.FoodRecord{
			"банан": {Key: "банан", DisplayName: "Банан", Kcal100g: 89},
		},
	}
	retriever := &fakeRetriever{}
	svc := NewService(foodStore, retriever, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "Банан")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionResolved, res.Status)
	require.NotNil(t, res.Chosen)
	assert.Equal(t, domain.CandidateSourceCustomExact, res.Chosen.Source)
	assert.Equal(t, 95, res.Confidence)

	// A local hit must not reach out to the external database.
	assert.Equal(t, 0, retriever.searchCalls)
}

func TestResolveExternal(t *testing.T) {
	t.Parallel()

	retriever := &fakeRetriever{
		searchResults: []domain.RawRecord{
			{Name: "Гречка", KcalPer100g: floatPtr(343)},
			{Name: "Гречка вареная", KcalPer100g: floatPtr(110)},
			{Name: "Гречневые хлопья", KcalPer100g: floatPtr(330)},
		},
	}
	svc := NewService(&fakeFoodStore{}, retriever, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "гречка")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionResolved, res.Status)
	require.NotNil(t, res.Chosen)
	assert.Equal(t, "Гречка", res.Chosen.Name)
	assert.Equal(t, 1, retriever.searchCalls)
}

func TestResolveExternalNoResults(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeFoodStore{}, &fakeRetriever{}, nil, 10, nil)

	res, err := svc.Resolve(context.Background(), uuid.New(), "несуществующая еда")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolutionNeedsManualInput, res.Status)
	assert.Equal(t, "external_empty", res.Note)
}

func TestResolveStoreErrorPropagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection lost")
	svc := NewService(&fakeFoodStore{err: storeErr}, &fakeRetriever{}, nil, 10, nil)

	_, err := svc.Resolve(context.Background(), uuid.New(), "банан")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}
