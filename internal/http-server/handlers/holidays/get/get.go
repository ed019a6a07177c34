package get

import (
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/pkg/response"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type HolidayLister interface {
	Holidays() *api.HolidaysResponse
}

type Response struct {
	response.Response
	api.HolidaysResponse
}

func New(log *slog.Logger, lister HolidayLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		resp := lister.Holidays()

		log.Info("Holidays retrieved", slog.Int("count", len(resp.Holidays)))

		render.JSON(w, r, Response{HolidaysResponse: *resp})
	}
}
