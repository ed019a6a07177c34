package delete

import (
	"context"
	"log/slog"
	"net/http"

	"booking-assistant/internal/service"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type HolidayRemover interface {
	RemoveHoliday(ctx context.Context, date string) error
}

func New(log *slog.Logger, remover HolidayRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		err := remover.RemoveHoliday(r.Context(), date)

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if err != nil {
			log.Error("Failed to remove holiday", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to remove holiday"))
			return
		}

		log.Info("Holiday removed", slog.String("date", date))
		w.WriteHeader(http.StatusNoContent)
	}
}
