package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("check out: %w", Wrap(KindNoOpenCheckIn, "nothing to close", nil))

	if !errors.Is(err, ErrNoOpenCheckIn) {
		t.Fatalf("errors.Is(%v, ErrNoOpenCheckIn) = false", err)
	}
	if errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("errors.Is(%v, ErrAlreadyCheckedIn) = true", err)
	}
	if got := KindOf(err); got != KindNoOpenCheckIn {
		t.Fatalf("KindOf = %q, want %q", got, KindNoOpenCheckIn)
	}
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unavailable(cause)

	if !errors.Is(err, ErrUnavailable) {
		t.Fatal("Unavailable error does not match ErrUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("Unavailable error lost its cause")
	}
	if errors.Is(err, ErrNoOpenCheckIn) {
		t.Fatal("Unavailable error conflated with a domain error")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("KindOf(plain) = %q, want internal", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindInvalidCoordinates: http.StatusBadRequest,
		KindAlreadyCheckedIn:   http.StatusConflict,
		KindNoOpenCheckIn:      http.StatusBadRequest,
		KindEmployeeNotFound:   http.StatusNotFound,
		KindForbidden:          http.StatusForbidden,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindUnavailable:        http.StatusServiceUnavailable,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", kind, got, want)
		}
	}
}
