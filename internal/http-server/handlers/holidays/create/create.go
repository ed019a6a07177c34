package create

import (
	"context"
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/internal/service"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type HolidayAdder interface {
	AddHoliday(ctx context.Context, date string) error
}

type Request struct {
	api.HolidayRequest
}

func New(log *slog.Logger, adder HolidayAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.Date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		err := adder.AddHoliday(r.Context(), req.Date)

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if err != nil {
			log.Error("Failed to add holiday", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to add holiday"))
			return
		}

		log.Info("Holiday added", slog.String("date", req.Date))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, req.HolidayRequest)
	}
}
