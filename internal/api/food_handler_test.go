package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazanov/nutrilog/internal/api/shared"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/store"
)

// fakeFoodStore keeps learned foods per user in memory.
type fakeFoodStore struct {
	records map[uuid.UUID]map[string]*domain.FoodRecord
	err     error
}

func newFakeFoodStore() *fakeFoodStore {
	return &fakeFoodStore{records: map[uuid.UUID]map[string]*domain.FoodRecord{}}
}

func (f *fakeFoodStore) GetAll(
	ctx context.Context, userID uuid.UUID,
) (map[string]*domain.FoodRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	foods := map[string]*domain.FoodRecord{}
	for k, v := range f.records[userID] {
		foods[k] = v
	}
	return foods, nil
}

func (f *fakeFoodStore) GetByKey(
	ctx context.Context, userID uuid.UUID, key string,
) (*domain.FoodRecord, error) {
	record, ok := f.records[userID][key]
	if !ok {
		return nil, store.ErrFoodNotFound
	}
	return record, nil
}

func (f *fakeFoodStore) Upsert(ctx context.Context, record *domain.FoodRecord) error {
	if f.err != nil {
		return f.err
	}
	if f.records[record.UserID] == nil {
		f.records[record.UserID] = map[string]*domain.FoodRecord{}
	}
	f.records[record.UserID][record.Key] = record
	return nil
}

func (f *fakeFoodStore) WithTx(tx *sql.Tx) store.FoodStore { return f }

func TestCreateFood(t *testing.T) {
	t.Parallel()

	t.Run("stores under the normalized key", func(t *testing.T) {
		t.Parallel()
		foodStore := newFakeFoodStore()
		handler := NewFoodHandler(foodStore, nil)

		w := httptest.NewRecorder()
		handler.CreateFood(w, authedRequest(http.MethodPost, "/foods",
			`{"name":"Банан!","kcal_100g":89,"serving_grams":120}`))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp FoodResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "банан", resp.Key)
		assert.Equal(t, "Банан!", resp.DisplayName)
		assert.InDelta(t, 89, resp.Kcal100g, 0.001)
		require.NotNil(t, resp.ServingGrams)
		assert.InDelta(t, 120, *resp.ServingGrams, 0.001)
		assert.Equal(t, string(domain.FoodSourceManual), resp.Source)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		handler := NewFoodHandler(newFakeFoodStore(), nil)

		w := httptest.NewRecorder()
		handler.CreateFood(w, httptest.NewRequest(http.MethodPost, "/foods", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		t.Parallel()
		handler := NewFoodHandler(newFakeFoodStore(), nil)

		for name, body := range map[string]string{
			"missing kcal":       `{"name":"банан"}`,
			"non-positive kcal":  `{"name":"банан","kcal_100g":0}`,
			"negative serving":   `{"name":"банан","kcal_100g":89,"serving_grams":-5}`,
			"name without words": `{"name":"(1)","kcal_100g":89}`,
		} {
			w := httptest.NewRecorder()
			handler.CreateFood(w, authedRequest(http.MethodPost, "/foods", body))
			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		t.Parallel()
		foodStore := newFakeFoodStore()
		foodStore.err = errors.New("connection refused")
		handler := NewFoodHandler(foodStore, nil)

		w := httptest.NewRecorder()
		handler.CreateFood(w, authedRequest(http.MethodPost, "/foods",
			`{"name":"банан","kcal_100g":89}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListFoods(t *testing.T) {
	t.Parallel()

	t.Run("returns foods sorted by key", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		foodStore := newFakeFoodStore()
		for _, f := range []struct {
			key, name string
			kcal      float64
		}{
			{"овсянка", "Овсянка", 343},
			{"банан", "Банан", 89},
			{"гречка", "Гречка", 343},
		} {
			record, err := domain.NewFoodRecord(
				userID, f.key, f.name, f.kcal, nil, domain.FoodSourceLearned)
			require.NoError(t, err)
			require.NoError(t, foodStore.Upsert(context.Background(), record))
		}
		handler := NewFoodHandler(foodStore, nil)

		req := httptest.NewRequest(http.MethodGet, "/foods", nil)
		req = req.WithContext(context.WithValue(
			req.Context(), shared.UserIDContextKey, userID))
		w := httptest.NewRecorder()
		handler.ListFoods(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp FoodListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Foods, 3)
		assert.Equal(t, "банан", resp.Foods[0].Key)
		assert.Equal(t, "гречка", resp.Foods[1].Key)
		assert.Equal(t, "овсянка", resp.Foods[2].Key)
	})

	t.Run("no foods yields an empty list", func(t *testing.T) {
		t.Parallel()
		handler := NewFoodHandler(newFakeFoodStore(), nil)

		w := httptest.NewRecorder()
		handler.ListFoods(w, authedRequest(http.MethodGet, "/foods", ""))

		require.Equal(t, http.StatusOK, w.Code)

		var resp FoodListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Foods)
	})
}
