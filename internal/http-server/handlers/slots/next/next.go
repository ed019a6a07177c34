package next

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/internal/service"
	"booking-assistant/internal/slots"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type NextSlotFinder interface {
	NextAvailable(ctx context.Context, from, after string, duration int, department string) (*api.NextSlotResponse, error)
}

type Response struct {
	response.Response
	api.NextSlotResponse
}

func New(log *slog.Logger, finder NextSlotFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.next.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()

		var duration int
		if s := q.Get("duration"); s != "" {
			d, err := slots.ParseDurationString(s)
			if err != nil {
				log.Error("invalid duration", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
				return
			}
			duration = d
		}

		resp, err := finder.NextAvailable(r.Context(), q.Get("from"), q.Get("after"), duration, q.Get("department"))

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if errors.Is(err, slots.ErrNoSlotsInHorizon) {
			log.Info("no slots within horizon", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NO_SLOTS), "no available slots within the search horizon"))
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
			log.Error("Failed to find next slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to find next slot"))
			return
		}

		log.Info("Next slot found", slog.String("date", resp.Date), slog.String("start", resp.Next.Start))

		render.JSON(w, r, Response{NextSlotResponse: *resp})
	}
}
