package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFoundWithID("Booking", "b-1"),
			expected: "NOT_FOUND: Booking not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("Failed to create booking", errors.New("connection refused")),
			expected: "INTERNAL_ERROR: Failed to create booking (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := Internal("Failed to list bookings", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should see through AppError")
	}
}

func TestAppError_StatusCode(t *testing.T) {
	zero := &AppError{Code: CodeInternal}
	if zero.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() with no status = %d, want 500", zero.StatusCode())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFoundWithID("Booking", "b-1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("slot taken"), CodeConflict, http.StatusBadRequest},
		{"unsupported media", UnsupportedMediaType("json only"), CodeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"rate limited", RateLimited(), CodeRateLimited, http.StatusTooManyRequests},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Booking", "12345")

	if err.Message != "Booking not found" {
		t.Errorf("expected message 'Booking not found', got %s", err.Message)
	}
	if err.Details["id"] != "12345" {
		t.Errorf("expected id '12345', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Booking" {
		t.Errorf("expected resource 'Booking', got %v", err.Details["resource"])
	}
}

func TestValidation_KeepsDetails(t *testing.T) {
	err := Validation("email must be a valid email address", map[string]any{"email": "must be a valid email address"})

	if err.Details["email"] != "must be a valid email address" {
		t.Errorf("expected email detail, got %v", err.Details["email"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("This time slot is already booked")
	regularErr := errors.New("regular error")

	if result := AsAppError(fmt.Errorf("create: %w", appErr)); result != appErr {
		t.Errorf("AsAppError() should unwrap to the same AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(Conflict("taken"), CodeConflict) {
		t.Errorf("HasCode() should match conflict")
	}
	if HasCode(Validation("bad", nil), CodeConflict) {
		t.Errorf("HasCode() should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Errorf("HasCode() should not match plain errors")
	}
}
