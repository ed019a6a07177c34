package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"booking-assistant/api"
	"booking-assistant/internal/service"
	"booking-assistant/pkg/response"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Booker interface {
	Book(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error)
}

type Request struct {
	api.BookingRequest
}

type Response struct {
	response.Response
	Booking api.BookingResponse `json:"booking"`
}

func New(log *slog.Logger, booker Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.create.New"

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

		log.Info("Request body decoded", slog.String("date", req.Date), slog.String("time", req.Time))

		if req.Date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		if req.Time == "" {
			log.Error("time is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "time is required"))
			return
		}

		booking, err := booker.Book(r.Context(), &req.BookingRequest)

		if service.IsInputError(err) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_INPUT), err.Error()))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "another booking for this day is in progress"))
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
			render.JSON(w, r, response.Error(string(response.BACKEND_FAILED), "failed to write calendar"))
			return
		}

		if err != nil {
			log.Error("Failed to create booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create booking"))
			return
		}

		switch booking.Status {
		case api.BookingRejected:
			log.Info("Booking rejected", slog.Any("reasons", booking.Reasons))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{
				Response: response.Error(string(response.SLOT_NOT_PERMITTED), strings.Join(booking.Reasons, ", ")),
				Booking:  *booking,
			})
		case api.BookingConflict:
			log.Info("Booking conflicted", slog.String("slot", booking.Slot.Start))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, Response{
				Response: response.Error(string(response.SLOT_NOT_AVAILABLE), "slot is not available"),
				Booking:  *booking,
			})
		default:
			log.Info("Booking created", slog.String("event_id", booking.EventID))
			w.WriteHeader(http.StatusCreated)
			render.JSON(w, r, Response{Booking: *booking})
		}
	}
}
