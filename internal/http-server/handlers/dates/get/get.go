package get

import (
	"log/slog"
	"net/http"

	"booking-assistant/api"
	"booking-assistant/internal/service"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type DateInfoGetter interface {
	DateInfo(date string) (*api.DateInfo, error)
}

type Response struct {
	response.Response
	api.DateInfo
}

func New(log *slog.Logger, getter DateInfoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dates.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")

		info, err := getter.DateInfo(date)

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if err != nil {
			log.Error("Failed to get date info", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get date info"))
			return
		}

		render.JSON(w, r, Response{DateInfo: *info})
	}
}
