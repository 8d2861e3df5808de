package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreeningList(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("Grand Cinema", 10, 15)
	screening := store.addScreening(cinema.ID, "Dune", time.Now().Add(time.Hour))
	empty := store.addScreening(cinema.ID, "Heat", time.Now().Add(2*time.Hour))
	user := store.addUser("alice@example.com", "customer")

	store.addHold(screening.ID, user.ID, 1, 1)
	store.addHold(screening.ID, user.ID, 1, 2)

	service := newTestService(store)

	results, err := service.Screening.List(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, screening.ID, results[0].ID)
	assert.Equal(t, int64(2), results[0].ReservedSeats)
	assert.Equal(t, 150, results[0].TotalSeats)
	assert.Equal(t, "Grand Cinema", results[0].CinemaName)
	assert.Equal(t, empty.ID, results[1].ID)
	assert.Equal(t, int64(0), results[1].ReservedSeats)
}

func TestGetRoomState_Grid(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("Arts Center", 2, 3)
	screening := store.addScreening(cinema.ID, "Amelie", time.Now().Add(time.Hour))
	alice := store.addUser("alice@example.com", "customer")
	bob := store.addUser("bob@example.com", "customer")

	store.addHold(screening.ID, alice.ID, 1, 2)
	store.addHold(screening.ID, bob.ID, 2, 3)

	service := newTestService(store)

	room, err := service.Screening.GetRoomState(context.Background(), screening.ID, &alice.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, room.Rows)
	assert.Equal(t, 3, room.SeatsPerRow)
	require.Len(t, room.Seats, 6)

	// Row-major order: (1,1) (1,2) (1,3) (2,1) (2,2) (2,3).
	expected := []response.SeatStatus{
		{Row: 1, Seat: 1, Status: response.SeatAvailable},
		{Row: 1, Seat: 2, Status: response.SeatHeldByViewer},
		{Row: 1, Seat: 3, Status: response.SeatAvailable},
		{Row: 2, Seat: 1, Status: response.SeatAvailable},
		{Row: 2, Seat: 2, Status: response.SeatAvailable},
		{Row: 2, Seat: 3, Status: response.SeatHeldByOther},
	}
	assert.Equal(t, expected, room.Seats)
}

func TestGetRoomState_AnonymousViewer(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("Arts Center", 1, 2)
	screening := store.addScreening(cinema.ID, "Amelie", time.Now().Add(time.Hour))
	alice := store.addUser("alice@example.com", "customer")
	store.addHold(screening.ID, alice.ID, 1, 1)

	service := newTestService(store)

	room, err := service.Screening.GetRoomState(context.Background(), screening.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, response.SeatHeldByOther, room.Seats[0].Status)
	assert.Equal(t, response.SeatAvailable, room.Seats[1].Status)
}

func TestGetRoomState_NotFound(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	_, err := service.Screening.GetRoomState(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScreeningCreate(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("Grand Cinema", 10, 15)
	service := newTestService(store)

	start := time.Now().Add(48 * time.Hour)
	result, err := service.Screening.Create(context.Background(), &request.CreateScreeningRequest{
		CinemaID:  cinema.ID.String(),
		FilmTitle: "Alien",
		StartTime: start,
	})

	require.NoError(t, err)
	assert.Equal(t, "Alien", result.FilmTitle)
	assert.Equal(t, "Grand Cinema", result.CinemaName)
	assert.Equal(t, 150, result.TotalSeats)

	stored, err := newFakeRepo(store).Screening.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestScreeningCreate_CinemaNotFound(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	_, err := service.Screening.Create(context.Background(), &request.CreateScreeningRequest{
		CinemaID:  uuid.New().String(),
		FilmTitle: "Alien",
		StartTime: time.Now().Add(time.Hour),
	})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScreeningCreate_MissingTitle(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("Grand Cinema", 10, 15)
	service := newTestService(store)

	_, err := service.Screening.Create(context.Background(), &request.CreateScreeningRequest{
		CinemaID:  cinema.ID.String(),
		StartTime: time.Now().Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

// Deleting a screening removes every hold on it in the same sweep, and
// leaves holds on other screenings alone.
func TestScreeningDelete_Cascade(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("City Theater", 8, 12)
	doomed := store.addScreening(cinema.ID, "Heat", time.Now().Add(time.Hour))
	survivor := store.addScreening(cinema.ID, "Ronin", time.Now().Add(2*time.Hour))
	alice := store.addUser("alice@example.com", "customer")
	bob := store.addUser("bob@example.com", "customer")

	store.addHold(doomed.ID, alice.ID, 1, 1)
	store.addHold(doomed.ID, bob.ID, 1, 2)
	store.addHold(doomed.ID, bob.ID, 2, 1)
	store.addHold(survivor.ID, alice.ID, 3, 3)

	roomCache := &spyRoomCache{}
	publisher := &spyPublisher{}
	service := newTestServiceWith(store, roomCache, publisher)

	result, err := service.Screening.Delete(context.Background(), doomed.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.HoldsReleased)
	assert.Equal(t, 1, store.holdCount())

	assert.Equal(t, []uuid.UUID{doomed.ID}, roomCache.invalidations())
	deleted := publisher.published(events.RoutingKeyScreeningDeleted)
	require.Len(t, deleted, 1)
	event := deleted[0].(events.ScreeningDeletedEvent)
	assert.Equal(t, int64(3), event.HoldsReleased)

	stored, err := newFakeRepo(store).Screening.FindByID(context.Background(), doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// The room is gone for readers too.
	_, err = service.Screening.GetRoomState(context.Background(), doomed.ID, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// A second delete finds nothing.
	_, err = service.Screening.Delete(context.Background(), doomed.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScreeningDelete_NoHolds(t *testing.T) {
	store := newFakeStore()
	cinema := store.addCinema("City Theater", 8, 12)
	screening := store.addScreening(cinema.ID, "Heat", time.Now().Add(time.Hour))

	service := newTestService(store)

	result, err := service.Screening.Delete(context.Background(), screening.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.HoldsReleased)
}
