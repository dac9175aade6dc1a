// Package resolution turns a free-text food query into a calorie resolution
// by combining the user's learned foods with the external nutrition database.
package resolution

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/domain/foodmatch"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// CandidateRetriever is the external nutrition database as the resolution
// pipeline sees it. Implementations are best-effort: failures degrade to
// empty results instead of errors, so an outage only narrows the evidence.
type CandidateRetriever interface {
	// Search returns up to limit raw records matching the free-text query.
	Search(ctx context.Context, query string, limit int) []domain.RawRecord

	// LookupBarcode returns the product registered under the barcode, or
	// nil when the barcode is unknown.
	LookupBarcode(ctx context.Context, code string) *domain.RawRecord
}

// Service resolves food queries to kcal/100g values. The precedence is
// fixed: barcode lookup, then the user's learned foods, then external
// search with robust aggregation.
type Service struct {
	foodStore   store.FoodStore
	retriever   CandidateRetriever
	params      *foodmatch.Params
	searchLimit int
	logger      *slog.Logger
}

// NewService creates a resolution service. A nil params uses the defaults;
// a non-positive searchLimit lets the retriever pick its configured page
// size. If log is nil, a default logger will be used.
func NewService(
	foodStore store.FoodStore,
	retriever CandidateRetriever,
	params *foodmatch.Params,
	searchLimit int,
	log *slog.Logger,
) *Service {
	if foodStore == nil {
		panic("foodStore cannot be nil")
	}
	if retriever == nil {
		panic("retriever cannot be nil")
	}
	if params == nil {
		params = foodmatch.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		foodStore:   foodStore,
		retriever:   retriever,
		params:      params,
		searchLimit: searchLimit,
		logger:      log.With(slog.String("component", "resolution_service")),
	}
}

// Resolve runs one pass of the pipeline for the user's query.
//
// The only error source is the food store; external retrieval problems and
// unmatchable queries come back as a needs_manual_input result instead.
func (s *Service) Resolve(
	ctx context.Context,
	userID uuid.UUID,
	query string,
) (*domain.ResolutionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.ResolutionResult{
			Status: domain.ResolutionNeedsManualInput,
			Note:   "empty_query",
		}, nil
	}

	if code, ok := foodmatch.BarcodeQuery(query); ok {
		if result := s.resolveBarcode(ctx, log, code); result != nil {
			return result, nil
		}
		// Unknown barcode: fall through to the regular pipeline so the
		// digits at least get the needs_manual_input treatment.
	}

	foods, err := s.foodStore.GetAll(ctx, userID)
	if err != nil {
		log.Error("failed to load learned foods",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if result := foodmatch.ResolveLocal(query, foods, s.params); result != nil {
		log.Debug("query resolved locally",
			slog.String("status", string(result.Status)),
			slog.Int("confidence", result.Confidence))
		return result, nil
	}

	records := s.retriever.Search(ctx, query, s.searchLimit)
	candidates := foodmatch.CandidatesFromRecords(query, records, s.params)
	result := foodmatch.AggregateExternal(candidates, s.params)

	log.Debug("query resolved externally",
		slog.String("status", string(result.Status)),
		slog.Int("candidates", len(candidates)),
		slog.Int("confidence", result.Confidence))
	return result, nil
}

// resolveBarcode attempts the barcode shortcut. Returns nil when the lookup
// misses or the product has no usable calorie value.
func (s *Service) resolveBarcode(
	ctx context.Context,
	log *slog.Logger,
	code string,
) *domain.ResolutionResult {
	rec := s.retriever.LookupBarcode(ctx, code)
	if rec == nil {
		return nil
	}

	kcal, ok := foodmatch.KcalPer100g(rec)
	if !ok {
		log.Debug("barcode product has no usable calorie value")
		return nil
	}

	candidate := domain.Candidate{
		Name:         rec.Name,
		Kcal100g:     kcal,
		MatchScore:   100,
		Source:       domain.CandidateSourceBarcode,
		ServingGrams: foodmatch.ServingGramsFromDescriptor(rec.ServingSize),
	}

	// A barcode hit is authoritative for the product, but confidence still
	// respects the global ceiling.
	return &domain.ResolutionResult{
		Status:     domain.ResolutionResolved,
		Chosen:     &candidate,
		Options:    []domain.Candidate{candidate},
		Confidence: domain.MaxConfidence,
		Note:       string(domain.CandidateSourceBarcode),
	}
}
