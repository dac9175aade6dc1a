package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mkazanov/nutrilog/internal/api/shared"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/service/foodlog"
)

// FoodLogHandler drives the food logging conversation over HTTP. Each
// endpoint is one conversation turn; the service tracks what question is
// pending per user.
type FoodLogHandler struct {
	foodLogService foodlog.Service
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewFoodLogHandler creates a new FoodLogHandler with the given dependencies.
// If log is nil, a default logger will be used.
func NewFoodLogHandler(foodLogService foodlog.Service, log *slog.Logger) *FoodLogHandler {
	if log == nil {
		log = slog.Default()
	}

	return &FoodLogHandler{
		foodLogService: foodLogService,
		validator:      validator.New(),
		logger:         log.With(slog.String("component", "foodlog_handler")),
	}
}

// LogFood handles POST /log/food, starting a conversation from free text.
func (h *FoodLogHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req LogFoodRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.respondOutcome(w, r, userID, func() (*foodlog.Outcome, error) {
		return h.foodLogService.LogFood(r.Context(), userID, req.Text)
	})
}

// Choose handles POST /log/food/choice, answering a pending candidate
// choice either by index or by rejecting all options.
func (h *FoodLogHandler) Choose(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChoiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if (req.Index == nil) == !req.Manual {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Exactly one of index or manual must be provided")
		return
	}

	h.respondOutcome(w, r, userID, func() (*foodlog.Outcome, error) {
		if req.Manual {
			return h.foodLogService.ChooseManual(r.Context(), userID)
		}
		return h.foodLogService.ChooseOption(r.Context(), userID, *req.Index)
	})
}

// EnterKcal handles POST /log/food/kcal, answering a pending manual
// kcal/100g question.
func (h *FoodLogHandler) EnterKcal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req KcalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.respondOutcome(w, r, userID, func() (*foodlog.Outcome, error) {
		return h.foodLogService.EnterManualKcal(r.Context(), userID, req.Kcal100g)
	})
}

// EnterServing handles POST /log/food/serving, answering a pending
// serving-size question.
func (h *FoodLogHandler) EnterServing(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ServingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.respondOutcome(w, r, userID, func() (*foodlog.Outcome, error) {
		return h.foodLogService.EnterServingGrams(r.Context(), userID, req.Grams)
	})
}

// EnterGrams handles POST /log/food/grams, answering a pending amount
// question.
func (h *FoodLogHandler) EnterGrams(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GramsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.respondOutcome(w, r, userID, func() (*foodlog.Outcome, error) {
		return h.foodLogService.EnterGrams(r.Context(), userID, req.Grams)
	})
}

// Cancel handles DELETE /log/food, discarding any pending question.
func (h *FoodLogHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.foodLogService.Cancel(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondOutcome executes one conversation turn and writes the outcome or
// a mapped error response.
func (h *FoodLogHandler) respondOutcome(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	turn func() (*foodlog.Outcome, error),
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	outcome, err := turn()
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		if statusCode >= http.StatusInternalServerError {
			log.Error("food log turn failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, OutcomeResponse{
		Logged: outcome.Logged,
		Prompt: outcome.Prompt,
	})
}
