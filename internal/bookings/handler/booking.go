package handler

import (
	"net/http"

	"salon/internal/bookings/service"
	httputil "salon/pkg/http"
	"salon/pkg/logger"
	"salon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	APIBanner      = "Wedding Salon API"
	MsgDeleted     = "Booking deleted successfully"
	paramStartDate = "start_date"
	paramEndDate   = "end_date"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/", h.Root)
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.GetAll)
	router.GET("/api/bookings/:id", h.GetByID)
	router.PUT("/api/bookings/:id", h.UpdateStatus)
	router.DELETE("/api/bookings/:id", h.Delete)
	router.POST("/api/availability", h.CheckAvailability)
	router.GET("/api/availability/range", h.AvailabilityRange)
}

func (h *BookingHandler) Root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteMessage(w, APIBanner); err != nil {
		h.log.Error("failed to write message response", "handler", "Root", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}
	h.writeSuccess(w, "GetAll", bookings)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	h.writeSuccess(w, "GetByID", booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}
	h.writeSuccess(w, "UpdateStatus", booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, MsgDeleted); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), req.BookingDate)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}
	h.writeSuccess(w, "CheckAvailability", availability)
}

func (h *BookingHandler) AvailabilityRange(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params, err := httputil.RequiredQuery(r, paramStartDate, paramEndDate)
	if err != nil {
		h.writeError(w, "AvailabilityRange", err)
		return
	}

	slots, err := h.service.AvailabilityRange(r.Context(), params[0], params[1])
	if err != nil {
		h.writeError(w, "AvailabilityRange", err)
		return
	}
	h.writeSuccess(w, "AvailabilityRange", slots)
}

func (h *BookingHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
