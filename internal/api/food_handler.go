package api

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/mkazanov/nutrilog/internal/api/shared"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/domain/foodmatch"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// FoodHandler handles the user's learned-food list.
type FoodHandler struct {
	foodStore store.FoodStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewFoodHandler creates a new FoodHandler with the given dependencies.
// If log is nil, a default logger will be used.
func NewFoodHandler(foodStore store.FoodStore, log *slog.Logger) *FoodHandler {
	if log == nil {
		log = slog.Default()
	}

	return &FoodHandler{
		foodStore: foodStore,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "food_handler")),
	}
}

// CreateFood handles POST /foods. The name is normalized into the storage
// key, so creating "Банан" and later "банан" updates the same record.
func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateFoodRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	key := foodmatch.Normalize(req.Name)
	if key == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Food name has no usable content")
		return
	}

	record, err := domain.NewFoodRecord(
		userID, key, req.Name, req.Kcal100g, req.ServingGrams, domain.FoodSourceManual,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid food data: "+err.Error())
		return
	}

	if err := h.foodStore.Upsert(r.Context(), record); err != nil {
		log.Error("failed to upsert food record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toFoodResponse(record))
}

// ListFoods handles GET /foods, returning the user's learned foods sorted
// by key for a stable listing.
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	foods, err := h.foodStore.GetAll(r.Context(), userID)
	if err != nil {
		log.Error("failed to list food records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	keys := make([]string, 0, len(foods))
	for k := range foods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resp := FoodListResponse{Foods: make([]FoodResponse, 0, len(keys))}
	for _, k := range keys {
		resp.Foods = append(resp.Foods, toFoodResponse(foods[k]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func toFoodResponse(record *domain.FoodRecord) FoodResponse {
	return FoodResponse{
		Key:          record.Key,
		DisplayName:  record.DisplayName,
		Kcal100g:     record.Kcal100g,
		ServingGrams: record.ServingGrams,
		Source:       string(record.Source),
	}
}
