package foodlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/domain/foodmatch"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*foodLogServiceImpl)(nil)

// Resolver is the resolution pipeline as this service consumes it.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, query string) (*domain.ResolutionResult, error)
}

// userConversation holds one user's pending question. The mutex serializes
// turns for that user without blocking anyone else.
type userConversation struct {
	mu    sync.Mutex
	state conversationState
}

// foodLogServiceImpl implements the Service interface.
type foodLogServiceImpl struct {
	db          *sql.DB
	resolver    Resolver
	foodStore   store.FoodStore
	dayLogStore store.DayLogStore
	params      *foodmatch.Params
	limits      Limits
	logger      *slog.Logger

	mu            sync.Mutex
	conversations map[uuid.UUID]*userConversation
}

// NewService creates a new food logging Service implementation.
// A nil params uses the matching pipeline defaults; zero-valued limits use
// the built-in ones. If log is nil, a default logger will be used.
func NewService(
	db *sql.DB,
	resolver Resolver,
	foodStore store.FoodStore,
	dayLogStore store.DayLogStore,
	params *foodmatch.Params,
	limits Limits,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if foodStore == nil {
		panic("foodStore cannot be nil")
	}
	if dayLogStore == nil {
		panic("dayLogStore cannot be nil")
	}
	if params == nil {
		params = foodmatch.NewDefaultParams()
	}
	if limits == (Limits{}) {
		limits = NewDefaultLimits()
	}
	if log == nil {
		log = slog.Default()
	}

	return &foodLogServiceImpl{
		db:            db,
		resolver:      resolver,
		foodStore:     foodStore,
		dayLogStore:   dayLogStore,
		params:        params,
		limits:        limits,
		logger:        log.With(slog.String("component", "foodlog_service")),
		conversations: make(map[uuid.UUID]*userConversation),
	}
}

// conversation returns the per-user conversation slot, creating it on first use.
func (s *foodLogServiceImpl) conversation(userID uuid.UUID) *userConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[userID]
	if !ok {
		conv = &userConversation{}
		s.conversations[userID] = conv
	}
	return conv
}

// LogFood implements Service.LogFood.
func (s *foodLogServiceImpl) LogFood(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	name, quantity := foodmatch.SplitQuantity(text, s.params)

	// Resolution may hit the network; run it before taking the user's
	// conversation lock so a slow lookup does not block other turns.
	result, err := s.resolver.Resolve(ctx, userID, name)
	if err != nil {
		log.Error("resolution failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewLogFoodError("failed to resolve food query", err)
	}

	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	// A fresh message always supersedes whatever question was pending.
	switch result.Status {
	case domain.ResolutionNeedsManualInput:
		conv.state = awaitingManualKcal{query: name, quantity: quantity}
		return &Outcome{Prompt: &Prompt{
			Kind:     PromptManualKcal,
			FoodName: name,
		}}, nil

	case domain.ResolutionNeedsChoice:
		conv.state = awaitingChoice{query: name, quantity: quantity, options: result.Options}
		return &Outcome{Prompt: &Prompt{
			Kind:       PromptChoice,
			FoodName:   name,
			Options:    result.Options,
			Confidence: result.Confidence,
		}}, nil

	default:
		return s.proceedWithCandidate(
			ctx, conv, userID, name, quantity, *result.Chosen, result.Confidence,
		)
	}
}

// ChooseOption implements Service.ChooseOption.
func (s *foodLogServiceImpl) ChooseOption(
	ctx context.Context,
	userID uuid.UUID,
	index int,
) (*Outcome, error) {
	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	st, ok := conv.state.(awaitingChoice)
	if !ok {
		return nil, ErrNoPendingPrompt
	}

	if index < 0 || index >= len(st.options) {
		return nil, ErrInvalidChoice
	}

	// An explicit pick settles the ambiguity; confidence is the ceiling.
	return s.proceedWithCandidate(
		ctx, conv, userID, st.query, st.quantity, st.options[index], domain.MaxConfidence,
	)
}

// ChooseManual implements Service.ChooseManual.
func (s *foodLogServiceImpl) ChooseManual(
	ctx context.Context,
	userID uuid.UUID,
) (*Outcome, error) {
	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	st, ok := conv.state.(awaitingChoice)
	if !ok {
		return nil, ErrNoPendingPrompt
	}

	conv.state = awaitingManualKcal{query: st.query, quantity: st.quantity}
	return &Outcome{Prompt: &Prompt{
		Kind:     PromptManualKcal,
		FoodName: st.query,
	}}, nil
}

// EnterManualKcal implements Service.EnterManualKcal.
func (s *foodLogServiceImpl) EnterManualKcal(
	ctx context.Context,
	userID uuid.UUID,
	kcal100g float64,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	st, ok := conv.state.(awaitingManualKcal)
	if !ok {
		return nil, ErrNoPendingPrompt
	}

	if kcal100g <= 0 || kcal100g > s.limits.MaxManualKcal100g {
		return nil, fmt.Errorf("%w: kcal/100g must be in (0, %.0f]",
			ErrInvalidInput, s.limits.MaxManualKcal100g)
	}

	key := foodmatch.Normalize(st.query)
	if key == "" {
		key = st.query
	}

	record, err := domain.NewFoodRecord(
		userID, key, st.query, kcal100g, nil, domain.FoodSourceManual,
	)
	if err != nil {
		return nil, NewLogFoodError("failed to build food record", err)
	}

	if err := s.foodStore.Upsert(ctx, record); err != nil {
		log.Error("failed to persist manual food record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewLogFoodError("failed to save food record", err)
	}

	candidate := domain.Candidate{
		Name:       st.query,
		Kcal100g:   kcal100g,
		MatchScore: 100,
		Source:     domain.CandidateSourceCustomExact,
	}
	return s.proceedWithCandidate(
		ctx, conv, userID, st.query, st.quantity, candidate, domain.MaxConfidence,
	)
}

// EnterServingGrams implements Service.EnterServingGrams.
func (s *foodLogServiceImpl) EnterServingGrams(
	ctx context.Context,
	userID uuid.UUID,
	grams float64,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	st, ok := conv.state.(awaitingServingGrams)
	if !ok {
		return nil, ErrNoPendingPrompt
	}

	if grams <= 0 || grams > s.limits.MaxServingGrams {
		return nil, fmt.Errorf("%w: serving grams must be in (0, %.0f]",
			ErrInvalidInput, s.limits.MaxServingGrams)
	}

	if err := s.learnServing(ctx, userID, st, grams); err != nil {
		log.Error("failed to learn serving size",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewLogFoodError("failed to save serving size", err)
	}

	return s.finish(ctx, conv, userID, st.foodName, st.kcal100g,
		st.amount*grams, st.confidence, st.source)
}

// EnterGrams implements Service.EnterGrams.
func (s *foodLogServiceImpl) EnterGrams(
	ctx context.Context,
	userID uuid.UUID,
	grams float64,
) (*Outcome, error) {
	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	st, ok := conv.state.(awaitingGrams)
	if !ok {
		return nil, ErrNoPendingPrompt
	}

	if grams <= 0 || grams > s.limits.MaxMealGrams {
		return nil, fmt.Errorf("%w: grams must be in (0, %.0f]",
			ErrInvalidInput, s.limits.MaxMealGrams)
	}

	return s.finish(ctx, conv, userID, st.foodName, st.kcal100g,
		grams, st.confidence, st.source)
}

// Cancel implements Service.Cancel.
func (s *foodLogServiceImpl) Cancel(ctx context.Context, userID uuid.UUID) error {
	conv := s.conversation(userID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	conv.state = nil
	return nil
}

// proceedWithCandidate continues the turn once a calorie value is settled:
// convert the quantity to grams if possible, otherwise park the candidate
// and ask the missing question. The caller holds the conversation lock.
func (s *foodLogServiceImpl) proceedWithCandidate(
	ctx context.Context,
	conv *userConversation,
	userID uuid.UUID,
	query string,
	quantity *domain.QuantitySpec,
	candidate domain.Candidate,
	confidence int,
) (*Outcome, error) {
	if quantity == nil {
		conv.state = awaitingGrams{
			query:      query,
			foodName:   candidate.Name,
			kcal100g:   candidate.Kcal100g,
			confidence: confidence,
			source:     string(candidate.Source),
		}
		return &Outcome{Prompt: &Prompt{
			Kind:       PromptGrams,
			FoodName:   candidate.Name,
			Kcal100g:   candidate.Kcal100g,
			Confidence: confidence,
		}}, nil
	}

	grams, ok := foodmatch.ConvertToGrams(*quantity, candidate.ServingGrams)
	if !ok {
		conv.state = awaitingServingGrams{
			query:      query,
			foodName:   candidate.Name,
			kcal100g:   candidate.Kcal100g,
			amount:     quantity.Amount,
			confidence: confidence,
			source:     string(candidate.Source),
		}
		return &Outcome{Prompt: &Prompt{
			Kind:       PromptServingGrams,
			FoodName:   candidate.Name,
			Kcal100g:   candidate.Kcal100g,
			Amount:     quantity.Amount,
			Confidence: confidence,
		}}, nil
	}

	return s.finish(ctx, conv, userID, candidate.Name, candidate.Kcal100g,
		grams, confidence, string(candidate.Source))
}

// finish charges the meal to the day log and clears the conversation on
// success. The caller holds the conversation lock; the pending question
// survives any failure so the user can retry.
func (s *foodLogServiceImpl) finish(
	ctx context.Context,
	conv *userConversation,
	userID uuid.UUID,
	foodName string,
	kcal100g float64,
	grams float64,
	confidence int,
	source string,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if grams <= 0 || grams > s.limits.MaxMealGrams {
		return nil, fmt.Errorf("%w: meal amount must be in (0, %.0f] grams",
			ErrInvalidInput, s.limits.MaxMealGrams)
	}

	calories := kcal100g * grams / 100
	day := domain.DayKey(time.Now())

	dayLog, err := s.dayLogStore.AddCalories(ctx, userID, day, calories)
	if err != nil {
		log.Error("failed to add calories to day log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewLogFoodError("failed to update day log", err)
	}

	conv.state = nil

	log.Info("meal logged",
		slog.String("user_id", userID.String()),
		slog.Float64("grams", grams),
		slog.Float64("calories", calories),
		slog.String("source", source))

	return &Outcome{Logged: &LogEntry{
		FoodName:      foodName,
		Kcal100g:      kcal100g,
		Grams:         grams,
		Calories:      calories,
		Day:           day,
		TotalCalories: dayLog.LoggedCalories,
		Confidence:    confidence,
		Source:        source,
	}}, nil
}

// learnServing persists the serving size for the conversation's food as a
// read-modify-write in one transaction: an existing record keeps its
// calorie value and gains the serving, a missing one is created from the
// resolved candidate.
func (s *foodLogServiceImpl) learnServing(
	ctx context.Context,
	userID uuid.UUID,
	st awaitingServingGrams,
	grams float64,
) error {
	key := foodmatch.Normalize(st.query)
	if key == "" {
		key = foodmatch.Normalize(st.foodName)
	}
	if key == "" {
		key = st.foodName
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		foods := s.foodStore.WithTx(tx)

		record, err := foods.GetByKey(ctx, userID, key)
		if err != nil {
			if !errors.Is(err, store.ErrFoodNotFound) {
				return err
			}
			record, err = domain.NewFoodRecord(
				userID, key, st.foodName, st.kcal100g, &grams, domain.FoodSourceLearned,
			)
			if err != nil {
				return err
			}
			return foods.Upsert(ctx, record)
		}

		if err := record.SetServingGrams(grams); err != nil {
			return err
		}
		return foods.Upsert(ctx, record)
	})
}
