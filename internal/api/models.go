package api

import (
	"github.com/google/uuid"

	"github.com/mkazanov/nutrilog/internal/service/foodlog"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT access token used for API authorization
	Token string `json:"token"`
}

// CreateFoodRequest defines the payload for adding a food to the user's
// learned list directly.
type CreateFoodRequest struct {
	Name         string   `json:"name"          validate:"required,min=1,max=200"`
	Kcal100g     float64  `json:"kcal_100g"     validate:"required,gt=0"`
	ServingGrams *float64 `json:"serving_grams" validate:"omitempty,gt=0"`
}

// FoodResponse is one learned food as exposed by the API.
type FoodResponse struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"display_name"`
	Kcal100g     float64  `json:"kcal_100g"`
	ServingGrams *float64 `json:"serving_grams,omitempty"`
	Source       string   `json:"source"`
}

// FoodListResponse is the payload of the food listing endpoint.
type FoodListResponse struct {
	Foods []FoodResponse `json:"foods"`
}

// LogFoodRequest defines the payload for starting a logging conversation.
type LogFoodRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// ChoiceRequest answers a pending candidate choice. Either Index picks a
// candidate or Manual rejects them all; the two are mutually exclusive.
type ChoiceRequest struct {
	Index  *int `json:"index"  validate:"omitempty,gte=0"`
	Manual bool `json:"manual"`
}

// KcalRequest answers a pending manual kcal/100g question.
type KcalRequest struct {
	Kcal100g float64 `json:"kcal_100g" validate:"required,gt=0"`
}

// ServingRequest answers a pending serving-size question.
type ServingRequest struct {
	Grams float64 `json:"grams" validate:"required,gt=0"`
}

// GramsRequest answers a pending amount question.
type GramsRequest struct {
	Grams float64 `json:"grams" validate:"required,gt=0"`
}

// OutcomeResponse is the result of one conversation turn, forwarded from
// the food logging service.
type OutcomeResponse struct {
	Logged *foodlog.LogEntry `json:"logged,omitempty"`
	Prompt *foodlog.Prompt   `json:"prompt,omitempty"`
}

// ProgressResponse is the payload of the daily progress endpoint.
type ProgressResponse struct {
	Day            string  `json:"day"`
	LoggedCalories float64 `json:"logged_calories"`
}
