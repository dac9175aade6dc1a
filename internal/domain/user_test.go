package domain

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("user@example.com", "a-long-enough-password")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "user@example.com" {
		t.Errorf("Expected email user@example.com, got %s", user.Email)
	}
	if user.ID.String() == "" {
		t.Error("Expected a generated user ID")
	}

	// Test invalid email formats
	for _, email := range []string{"", "no-at-sign", "@nodomain", "user@", "user@nodot"} {
		if _, err := NewUser(email, "a-long-enough-password"); err == nil {
			t.Errorf("Expected error for email %q", email)
		}
	}

	// Test password length bounds
	if _, err := NewUser("user@example.com", "short"); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
	long := strings.Repeat("x", 73)
	if _, err := NewUser("user@example.com", long); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("user@example.com", "a-long-enough-password")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A user loaded from storage has only the hash.
	user.Password = ""
	user.HashedPassword = "$2a$10$fakehashfortest"
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}
