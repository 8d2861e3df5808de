package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReservationService lets each test script the service outcome.
type stubReservationService struct {
	reserveResult *response.ReservationResponse
	err           error
}

func (s *stubReservationService) Reserve(ctx context.Context, actor usecase.Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error) {
	return s.reserveResult, s.err
}

func (s *stubReservationService) Release(ctx context.Context, actor usecase.Actor, req *request.ReleaseSeatRequest) error {
	return s.err
}

func (s *stubReservationService) CancelAllForScreening(ctx context.Context, actor usecase.Actor, screeningID uuid.UUID) (*response.CancelAllResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.CancelAllResponse{ScreeningID: screeningID, HoldsReleased: 2}, nil
}

func (s *stubReservationService) GetMyReservations(ctx context.Context, actor usecase.Actor) ([]*response.MyReservationResponse, error) {
	return nil, s.err
}

func identifiedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := utils.SetUserContext(req.Context(), userID, "customer")
	return req.WithContext(ctx)
}

func TestReserveHandler_StatusMapping(t *testing.T) {
	screeningID := uuid.New()
	body, err := json.Marshal(request.ReserveSeatRequest{
		ScreeningID: screeningID.String(),
		Row:         1,
		Seat:        1,
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"conflict", fmt.Errorf("seat 1-1: %w", repository.ErrConflict), http.StatusConflict},
		{"validation", fmt.Errorf("bad seat: %w", usecase.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("screening: %w", repository.ErrNotFound), http.StatusNotFound},
		{"internal", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReservationService{err: tt.serviceErr}
			if tt.serviceErr == nil {
				stub.reserveResult = &response.ReservationResponse{
					ID:          uuid.New(),
					ScreeningID: screeningID,
					Row:         1,
					Seat:        1,
					ReservedAt:  time.Now(),
				}
			}
			handler := NewReservationHandler(stub, zap.NewNop())

			rec := httptest.NewRecorder()
			handler.Reserve(rec, identifiedRequest(http.MethodPost, "/api/reservations", body, uuid.New()))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var envelope utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantStatus < 400, envelope.Status)
		})
	}
}

func TestReserveHandler_AnonymousRejected(t *testing.T) {
	handler := NewReservationHandler(&stubReservationService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader([]byte(`{}`)))
	handler.Reserve(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReserveHandler_MalformedBody(t *testing.T) {
	handler := NewReservationHandler(&stubReservationService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	req := identifiedRequest(http.MethodPost, "/api/reservations", []byte(`{not json`), uuid.New())
	handler.Reserve(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReleaseHandler_NotFound(t *testing.T) {
	stub := &stubReservationService{err: fmt.Errorf("no hold: %w", repository.ErrNotFound)}
	handler := NewReservationHandler(stub, zap.NewNop())

	body, err := json.Marshal(request.ReleaseSeatRequest{
		ScreeningID: uuid.New().String(),
		Row:         1,
		Seat:        1,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.Release(rec, identifiedRequest(http.MethodDelete, "/api/reservations", body, uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
