package create

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booking-assistant/api"
	"booking-assistant/internal/slots"
	"booking-assistant/pkg/handlers/slogdiscard"
	"booking-assistant/pkg/response"
)

type stubAdder struct {
	err   error
	added []string
}

func (s *stubAdder) AddHoliday(_ context.Context, date string) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, date)
	return nil
}

func TestCreateHandler(t *testing.T) {
	adder := &stubAdder{}
	handler := New(slogdiscard.NewDiscardLogger(), adder)

	req := httptest.NewRequest(http.MethodPost, "/holidays", strings.NewReader(`{"date":"2026-08-15"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if len(adder.added) != 1 || adder.added[0] != "2026-08-15" {
		t.Fatalf("holiday not forwarded: %v", adder.added)
	}

	var body api.HolidayRequest
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Date != "2026-08-15" {
		t.Fatalf("expected the date echoed back, got %q", body.Date)
	}
}

func TestCreateHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"malformed body", `{"date":`, nil, http.StatusBadRequest, string(response.BAD_REQUEST)},
		{"missing date", `{}`, nil, http.StatusBadRequest, string(response.BAD_REQUEST)},
		{"bad date", `{"date":"15/08/2026"}`, fmt.Errorf("op: %w", slots.ErrInvalidDate), http.StatusBadRequest, string(response.INVALID_INPUT)},
		{"store failure", `{"date":"2026-08-15"}`, fmt.Errorf("postgres down"), http.StatusInternalServerError, string(response.FAILED_REQUEST)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adder := &stubAdder{err: tt.err}
			handler := New(slogdiscard.NewDiscardLogger(), adder)

			req := httptest.NewRequest(http.MethodPost, "/holidays", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			if len(adder.added) != 0 {
				t.Fatalf("nothing should be added, got %v", adder.added)
			}

			var body response.Response
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Code != tt.wantErr {
				t.Fatalf("expected code %q, got %q", tt.wantErr, body.Code)
			}
		})
	}
}
