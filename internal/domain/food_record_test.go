package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewFoodRecord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	serving := 120.0

	record, err := NewFoodRecord(userID, "банан", "Банан", 89, &serving, FoodSourceLearned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if record.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, record.UserID)
	}
	if record.Key != "банан" {
		t.Errorf("Expected key %q, got %q", "банан", record.Key)
	}
	if record.Kcal100g != 89 {
		t.Errorf("Expected kcal 89, got %v", record.Kcal100g)
	}
	if record.ServingGrams == nil || *record.ServingGrams != 120 {
		t.Errorf("Expected serving grams 120, got %v", record.ServingGrams)
	}
	if record.CreatedAt.IsZero() || record.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Test empty user ID
	_, err = NewFoodRecord(uuid.Nil, "банан", "Банан", 89, nil, FoodSourceManual)
	if err != ErrEmptyFoodUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyFoodUserID, err)
	}

	// Test empty key
	_, err = NewFoodRecord(userID, "", "Банан", 89, nil, FoodSourceManual)
	if err != ErrEmptyFoodKey {
		t.Errorf("Expected error %v, got %v", ErrEmptyFoodKey, err)
	}

	// Test empty display name
	_, err = NewFoodRecord(userID, "банан", "", 89, nil, FoodSourceManual)
	if err != ErrEmptyFoodName {
		t.Errorf("Expected error %v, got %v", ErrEmptyFoodName, err)
	}

	// Test non-positive kcal
	_, err = NewFoodRecord(userID, "банан", "Банан", 0, nil, FoodSourceManual)
	if err != ErrNonPositiveKcal {
		t.Errorf("Expected error %v, got %v", ErrNonPositiveKcal, err)
	}

	// Test non-positive serving
	zero := 0.0
	_, err = NewFoodRecord(userID, "банан", "Банан", 89, &zero, FoodSourceManual)
	if err != ErrNonPositiveServing {
		t.Errorf("Expected error %v, got %v", ErrNonPositiveServing, err)
	}

	// Test invalid source
	_, err = NewFoodRecord(userID, "банан", "Банан", 89, nil, FoodSource("guessed"))
	if err != ErrInvalidFoodSource {
		t.Errorf("Expected error %v, got %v", ErrInvalidFoodSource, err)
	}
}

func TestSetServingGrams(t *testing.T) {
	t.Parallel()

	record, err := NewFoodRecord(uuid.New(), "банан", "Банан", 89, nil, FoodSourceManual)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := record.SetServingGrams(120); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.ServingGrams == nil || *record.ServingGrams != 120 {
		t.Errorf("Expected serving grams 120, got %v", record.ServingGrams)
	}

	if err := record.SetServingGrams(0); err != ErrNonPositiveServing {
		t.Errorf("Expected error %v, got %v", ErrNonPositiveServing, err)
	}
	if err := record.SetServingGrams(-5); err != ErrNonPositiveServing {
		t.Errorf("Expected error %v, got %v", ErrNonPositiveServing, err)
	}
}
