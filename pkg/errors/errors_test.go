package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"empty corpus", ErrEmptyCorpus, http.StatusServiceUnavailable},
		{"corpus source", ErrCorpusSource, http.StatusServiceUnavailable},
		{"timeout", ErrTimeout, http.StatusGatewayTimeout},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("context: %w", ErrInvalidInput), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAppError(t *testing.T) {
	appErr := Newf(ErrInvalidInput, http.StatusUnprocessableEntity, "limit %d out of range", 0)

	if !errors.Is(appErr, ErrInvalidInput) {
		t.Error("AppError should unwrap to its sentinel")
	}
	if got := HTTPStatusCode(appErr); got != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatusCode = %d, want 422 (AppError overrides sentinel mapping)", got)
	}
	want := "invalid input: limit 0 out of range"
	if appErr.Error() != want {
		t.Errorf("Error() = %q, want %q", appErr.Error(), want)
	}
}
