package validate

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

type SlotChecker interface {
	CheckSlot(ctx context.Context, req *api.SlotCheckRequest) (*api.SlotCheckResponse, error)
}

type Request struct {
	api.SlotCheckRequest
}

type Response struct {
	response.Response
	api.SlotCheckResponse
}

// New answers whether a slot may be booked. A slot that is not permitted is
// still a 200: the verdict is in the body.
func New(log *slog.Logger, checker SlotChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.validate.New"

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

		log.Info("Request body decoded", slog.Any("request", req))

		if req.Date == "" || req.Time == "" {
			log.Error("date or time is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date and time are required"))
			return
		}

		resp, err := checker.CheckSlot(r.Context(), &req.SlotCheckRequest)

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
			log.Error("Failed to check slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to check slot"))
			return
		}

		log.Info("Slot checked", slog.Bool("available", resp.Available), slog.Any("reasons", resp.Reasons))

		render.JSON(w, r, Response{SlotCheckResponse: *resp})
	}
}
