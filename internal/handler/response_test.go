package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"tracewing-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

func TestWriteError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"domain", apperror.Wrap(apperror.KindAlreadyCheckedIn, "already checked in on 2025-03-10", nil), 409, "already_checked_in", "already checked in on 2025-03-10"},
		{"wrapped domain", fmt.Errorf("check in: %w", apperror.Wrap(apperror.KindNoOpenCheckIn, "no check-in", nil)), 400, "no_open_check_in", "no check-in"},
		{"unavailable", apperror.Unavailable(errors.New("dial tcp: refused")), 503, "unavailable", ""},
		{"unknown", errors.New("boom"), 500, "internal", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, log, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus || body["kind"] != tt.wantKind {
				t.Fatalf("got %d %v, want %d kind %s", resp.StatusCode, body, tt.wantStatus, tt.wantKind)
			}
			if tt.wantMsg != "" && body["error"] != tt.wantMsg {
				t.Fatalf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestCoordinates(t *testing.T) {
	lat, lng := 1.5, 2.5

	if p, err := coordinates(nil, nil); p != nil || err != nil {
		t.Fatalf("coordinates(nil, nil) = %v, %v", p, err)
	}
	if _, err := coordinates(&lat, nil); !errors.Is(err, apperror.ErrInvalidCoordinates) {
		t.Fatalf("coordinates(lat, nil) error = %v", err)
	}
	p, err := coordinates(&lat, &lng)
	if err != nil || p.Latitude != lat || p.Longitude != lng {
		t.Fatalf("coordinates(lat, lng) = %v, %v", p, err)
	}
}
