package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/internal/service"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type EventLister interface {
	ListEvents(ctx context.Context, date, department string) (*api.EventsResponse, error)
}

type Response struct {
	response.Response
	api.EventsResponse
}

func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := r.URL.Query().Get("date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		events, err := lister.ListEvents(r.Context(), date, r.URL.Query().Get("department"))

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "department not found"))
			return
		}

		if errors.Is(err, response.ErrBackend) {
			log.Error("calendar backend failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.BACKEND_FAILED), "failed to read calendar"))
			return
		}

		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		log.Info("Bookings retrieved", slog.Int("count", len(events.Events)))

		render.JSON(w, r, Response{EventsResponse: *events})
	}
}
