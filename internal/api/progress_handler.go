package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkazanov/nutrilog/internal/api/shared"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// ProgressHandler exposes the per-day calorie totals.
type ProgressHandler struct {
	dayLogStore store.DayLogStore
	logger      *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler with the given dependencies.
// If log is nil, a default logger will be used.
func NewProgressHandler(dayLogStore store.DayLogStore, log *slog.Logger) *ProgressHandler {
	if log == nil {
		log = slog.Default()
	}

	return &ProgressHandler{
		dayLogStore: dayLogStore,
		logger:      log.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /progress. An optional "day" query parameter
// (YYYY-MM-DD) selects the day; it defaults to today in UTC. A day with
// no logged food reports zero calories rather than 404.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	day := domain.DayKey(time.Now())
	if param := r.URL.Query().Get("day"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid day format, expected YYYY-MM-DD")
			return
		}
		day = domain.DayKey(parsed)
	}

	dayLog, err := h.dayLogStore.Get(r.Context(), userID, day)
	if err != nil {
		if errors.Is(err, store.ErrDayLogNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
				Day:            day,
				LoggedCalories: 0,
			})
			return
		}
		log.Error("failed to get day log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
		Day:            dayLog.Day,
		LoggedCalories: dayLog.LoggedCalories,
	})
}
