package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-tickets/internal/data/cache"
	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/events"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// enforces the same seat uniqueness rule under one mutex, so the
// concurrency behavior the services rely on carries over: of N
// simultaneous hold inserts for one seat exactly one succeeds.
type fakeStore struct {
	mu         sync.Mutex
	cinemas    map[uuid.UUID]*entity.Cinema
	screenings map[uuid.UUID]*entity.Screening
	holds      map[uuid.UUID]*entity.SeatHold
	users      map[uuid.UUID]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cinemas:    make(map[uuid.UUID]*entity.Cinema),
		screenings: make(map[uuid.UUID]*entity.Screening),
		holds:      make(map[uuid.UUID]*entity.SeatHold),
		users:      make(map[uuid.UUID]*entity.User),
	}
}

// newFakeRepo wires every repository interface to the same store.
func newFakeRepo(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		Cinema:    fakeCinemas{store},
		Screening: fakeScreenings{store},
		SeatHold:  fakeHolds{store},
		User:      fakeUsers{store},
		Tx:        store,
	}
}

func newTestService(store *fakeStore) *Service {
	return NewService(newFakeRepo(store), zap.NewNop(), nil, nil, nil)
}

func newTestServiceWith(store *fakeStore, roomCache RoomCache, publisher events.Publisher) *Service {
	return NewService(newFakeRepo(store), zap.NewNop(), roomCache, publisher, nil)
}

// spyRoomCache records invalidations; reads always miss.
type spyRoomCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (c *spyRoomCache) Get(ctx context.Context, screeningID uuid.UUID) (*cache.RoomSnapshot, error) {
	return nil, cache.ErrCacheMiss
}

func (c *spyRoomCache) Set(ctx context.Context, snapshot *cache.RoomSnapshot) error {
	return nil
}

func (c *spyRoomCache) Invalidate(ctx context.Context, screeningID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, screeningID)
	return nil
}

func (c *spyRoomCache) invalidations() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.invalidated...)
}

type publishedEvent struct {
	routingKey string
	event      any
}

// spyPublisher records every published event.
type spyPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *spyPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, event: event})
	return nil
}

func (p *spyPublisher) published(routingKey string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []any
	for _, e := range p.events {
		if e.routingKey == routingKey {
			matched = append(matched, e.event)
		}
	}
	return matched
}

// ---- fixtures ----

func (s *fakeStore) addCinema(name string, rows, seatsPerRow int) *entity.Cinema {
	cinema := &entity.Cinema{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:        name,
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
	}
	s.mu.Lock()
	s.cinemas[cinema.ID] = cinema
	s.mu.Unlock()
	return cinema
}

func (s *fakeStore) addScreening(cinemaID uuid.UUID, film string, start time.Time) *entity.Screening {
	screening := &entity.Screening{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		CinemaID:  cinemaID,
		FilmTitle: film,
		StartTime: start,
	}
	s.mu.Lock()
	s.screenings[screening.ID] = screening
	s.mu.Unlock()
	return screening
}

func (s *fakeStore) addUser(email string, role entity.UserRole) *entity.User {
	user := &entity.User{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:       email,
		Name:        "Test",
		Surname:     "User",
		Role:        role,
		LockVersion: uuid.New(),
	}
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
	return user
}

func (s *fakeStore) addHold(screeningID, userID uuid.UUID, row, seat int) *entity.SeatHold {
	hold := &entity.SeatHold{
		ID:          uuid.New(),
		ScreeningID: screeningID,
		UserID:      userID,
		RowNumber:   row,
		SeatNumber:  seat,
		ReservedAt:  time.Now(),
	}
	s.mu.Lock()
	s.holds[hold.ID] = hold
	s.mu.Unlock()
	return hold
}

func (s *fakeStore) holdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holds)
}

// ---- cinemas ----

type fakeCinemas struct{ s *fakeStore }

func (f fakeCinemas) Create(ctx context.Context, cinema *entity.Cinema) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c := *cinema
	f.s.cinemas[c.ID] = &c
	return nil
}

func (f fakeCinemas) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cinema, ok := f.s.cinemas[id]
	if !ok {
		return nil, nil
	}
	c := *cinema
	return &c, nil
}

func (f fakeCinemas) FindAll(ctx context.Context) ([]*entity.Cinema, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cinemas := make([]*entity.Cinema, 0, len(f.s.cinemas))
	for _, cinema := range f.s.cinemas {
		c := *cinema
		cinemas = append(cinemas, &c)
	}
	sort.Slice(cinemas, func(i, j int) bool { return cinemas[i].Name < cinemas[j].Name })
	return cinemas, nil
}

// ---- screenings ----

type fakeScreenings struct{ s *fakeStore }

func (f fakeScreenings) Create(ctx context.Context, screening *entity.Screening) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sc := *screening
	f.s.screenings[sc.ID] = &sc
	return nil
}

func (f fakeScreenings) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	screening, ok := f.s.screenings[id]
	if !ok {
		return nil, nil
	}
	sc := *screening
	return &sc, nil
}

func (f fakeScreenings) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	screenings := make([]*entity.Screening, 0, len(f.s.screenings))
	for _, screening := range f.s.screenings {
		sc := *screening
		screenings = append(screenings, &sc)
	}
	sort.Slice(screenings, func(i, j int) bool {
		return screenings[i].StartTime.Before(screenings[j].StartTime)
	})
	return screenings, nil
}

func (f fakeScreenings) Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.screenings[id]; !ok {
		return false, nil
	}
	delete(f.s.screenings, id)
	return true, nil
}

// ---- seat holds ----

type fakeHolds struct{ s *fakeStore }

func (f fakeHolds) Create(ctx context.Context, hold *entity.SeatHold) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.holds {
		if existing.ScreeningID == hold.ScreeningID &&
			existing.RowNumber == hold.RowNumber &&
			existing.SeatNumber == hold.SeatNumber {
			return fmt.Errorf("seat %d-%d for screening %s: %w",
				hold.RowNumber, hold.SeatNumber, hold.ScreeningID.String(), repository.ErrConflict)
		}
	}
	h := *hold
	f.s.holds[h.ID] = &h
	return nil
}

func (f fakeHolds) FindBySeat(ctx context.Context, screeningID uuid.UUID, row, seat int) (*entity.SeatHold, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, hold := range f.s.holds {
		if hold.ScreeningID == screeningID && hold.RowNumber == row && hold.SeatNumber == seat {
			h := *hold
			return &h, nil
		}
	}
	return nil, nil
}

func (f fakeHolds) FindByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.SeatHold, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var holds []*entity.SeatHold
	for _, hold := range f.s.holds {
		if hold.ScreeningID == screeningID {
			h := *hold
			holds = append(holds, &h)
		}
	}
	sort.Slice(holds, func(i, j int) bool {
		if holds[i].RowNumber != holds[j].RowNumber {
			return holds[i].RowNumber < holds[j].RowNumber
		}
		return holds[i].SeatNumber < holds[j].SeatNumber
	})
	return holds, nil
}

func (f fakeHolds) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SeatHold, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var holds []*entity.SeatHold
	for _, hold := range f.s.holds {
		if hold.UserID == userID {
			h := *hold
			holds = append(holds, &h)
		}
	}
	sort.Slice(holds, func(i, j int) bool {
		si, sj := f.s.screenings[holds[i].ScreeningID], f.s.screenings[holds[j].ScreeningID]
		if si != nil && sj != nil && !si.StartTime.Equal(sj.StartTime) {
			return si.StartTime.Before(sj.StartTime)
		}
		if holds[i].RowNumber != holds[j].RowNumber {
			return holds[i].RowNumber < holds[j].RowNumber
		}
		return holds[i].SeatNumber < holds[j].SeatNumber
	})
	return holds, nil
}

func (f fakeHolds) CountsByScreening(ctx context.Context) (map[uuid.UUID]int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for _, hold := range f.s.holds {
		counts[hold.ScreeningID]++
	}
	return counts, nil
}

func (f fakeHolds) DeleteOwned(ctx context.Context, screeningID, userID uuid.UUID, row, seat int) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, hold := range f.s.holds {
		if hold.ScreeningID == screeningID && hold.UserID == userID &&
			hold.RowNumber == row && hold.SeatNumber == seat {
			delete(f.s.holds, id)
			return true, nil
		}
	}
	return false, nil
}

func (f fakeHolds) DeleteByScreeningAndUser(ctx context.Context, screeningID, userID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var count int64
	for id, hold := range f.s.holds {
		if hold.ScreeningID == screeningID && hold.UserID == userID {
			delete(f.s.holds, id)
			count++
		}
	}
	return count, nil
}

func (f fakeHolds) DeleteByScreening(ctx context.Context, q database.Queryer, screeningID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var count int64
	for id, hold := range f.s.holds {
		if hold.ScreeningID == screeningID {
			delete(f.s.holds, id)
			count++
		}
	}
	return count, nil
}

func (f fakeHolds) DeleteByUser(ctx context.Context, q database.Queryer, userID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var count int64
	for id, hold := range f.s.holds {
		if hold.UserID == userID {
			delete(f.s.holds, id)
			count++
		}
	}
	return count, nil
}

// ---- users ----

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Create(ctx context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u := *user
	f.s.users[u.ID] = &u
	return nil
}

func (f fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	user, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (f fakeUsers) FindAll(ctx context.Context) ([]*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	users := make([]*entity.User, 0, len(f.s.users))
	for _, user := range f.s.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (f fakeUsers) UpdateProfile(ctx context.Context, user *entity.User, expectedVersion *uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.users[user.ID]
	if !ok {
		return false, nil
	}
	if expectedVersion != nil && stored.LockVersion != *expectedVersion {
		return false, nil
	}
	stored.Name = user.Name
	stored.Surname = user.Surname
	stored.Phone = user.Phone
	stored.LockVersion = user.LockVersion
	stored.UpdatedAt = user.UpdatedAt
	return true, nil
}

func (f fakeUsers) Delete(ctx context.Context, q database.Queryer, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[id]; !ok {
		return false, nil
	}
	delete(f.s.users, id)
	return true, nil
}

// ---- transactions ----

// WithTx snapshots the store, runs fn and restores the snapshot when fn
// fails, mirroring a rolled back transaction.
func (s *fakeStore) WithTx(ctx context.Context, fn func(q database.Queryer) error) error {
	s.mu.Lock()
	cinemas := copyEntities(s.cinemas)
	screenings := copyEntities(s.screenings)
	holds := copyEntities(s.holds)
	users := copyEntities(s.users)
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.cinemas = cinemas
		s.screenings = screenings
		s.holds = holds
		s.users = users
		s.mu.Unlock()
		return err
	}
	return nil
}

func copyEntities[V any](src map[uuid.UUID]*V) map[uuid.UUID]*V {
	dst := make(map[uuid.UUID]*V, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}
