package resolve

import (
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/pkg/response"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type DepartmentResolver interface {
	ResolveDepartment(reason string) api.Department
}

type Response struct {
	response.Response
	Department api.Department `json:"department"`
}

func New(log *slog.Logger, resolver DepartmentResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.departments.resolve.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		reason := r.URL.Query().Get("reason")
		if reason == "" {
			log.Error("reason is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "reason is required"))
			return
		}

		dep := resolver.ResolveDepartment(reason)

		log.Info("Department resolved", slog.String("department", dep.Name), slog.String("calendar_id", dep.CalendarID))

		render.JSON(w, r, Response{Department: dep})
	}
}
