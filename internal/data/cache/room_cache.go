package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when no snapshot is stored for the screening.
var ErrCacheMiss = errors.New("cache miss")

// HoldEntry is one occupied seat inside a snapshot. The owner ID stays
// in the snapshot so the grid can be personalized per viewer at read
// time without another trip to the database.
type HoldEntry struct {
	Row    int       `json:"row"`
	Seat   int       `json:"seat"`
	UserID uuid.UUID `json:"user_id"`
}

// RoomSnapshot is the viewer-agnostic state of one screening room.
type RoomSnapshot struct {
	ScreeningID uuid.UUID   `json:"screening_id"`
	FilmTitle   string      `json:"film_title"`
	CinemaName  string      `json:"cinema_name"`
	StartTime   time.Time   `json:"start_time"`
	Rows        int         `json:"rows"`
	SeatsPerRow int         `json:"seats_per_row"`
	Holds       []HoldEntry `json:"holds"`
}

type RoomStateCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRoomStateCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RoomStateCache {
	return &RoomStateCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "room_state")),
	}
}

func roomKey(screeningID uuid.UUID) string {
	return fmt.Sprintf("room_state:%s", screeningID.String())
}

func (c *RoomStateCache) Get(ctx context.Context, screeningID uuid.UUID) (*RoomSnapshot, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, roomKey(screeningID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get room state for screening %s: %w", screeningID.String(), err)
	}

	var snapshot RoomSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		c.log.Warn("Failed to unmarshal room state snapshot",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, ErrCacheMiss
	}

	return &snapshot, nil
}

func (c *RoomStateCache) Set(ctx context.Context, snapshot *RoomSnapshot) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal room state for screening %s: %w", snapshot.ScreeningID.String(), err)
	}

	if err := c.client.Set(ctx, roomKey(snapshot.ScreeningID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set room state for screening %s: %w", snapshot.ScreeningID.String(), err)
	}

	return nil
}

func (c *RoomStateCache) Invalidate(ctx context.Context, screeningID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, roomKey(screeningID)).Err(); err != nil {
		return fmt.Errorf("invalidate room state for screening %s: %w", screeningID.String(), err)
	}

	return nil
}
