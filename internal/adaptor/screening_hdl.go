package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

func (h *ScreeningHandler) List(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", screenings)
}

// GetRoomState returns the seat grid. Anonymous callers get the plain
// view; identified callers see their own seats marked separately.
func (h *ScreeningHandler) GetRoomState(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid screening ID", nil)
		return
	}

	var viewer *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewer = &userID
	}

	room, err := h.service.GetRoomState(r.Context(), id, viewer)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Room state retrieved successfully", room)
}

func (h *ScreeningHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screening, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Screening created successfully", screening)
}

func (h *ScreeningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid screening ID", nil)
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Screening deleted successfully", result)
}
