package resolve

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking-assistant/api"
	"booking-assistant/pkg/handlers/slogdiscard"
)

type stubResolver struct{}

func (stubResolver) ResolveDepartment(reason string) api.Department {
	if reason == "heart" {
		return api.Department{Name: "Cardiology", CalendarID: "cardio@clinic"}
	}
	return api.Department{Name: "General Medicine", CalendarID: "general@clinic"}
}

func TestResolveHandler(t *testing.T) {
	handler := New(slogdiscard.NewDiscardLogger(), stubResolver{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/departments/resolve?reason=heart", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body Response
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Department.CalendarID != "cardio@clinic" {
		t.Fatalf("unexpected department %+v", body.Department)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/departments/resolve", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without reason, got %d", rr.Code)
	}
}
