package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/roomlog/internal/core"
	"github.com/vovakirdan/roomlog/internal/store"
)

// DefaultMaxNameLength is used when the service is built with a non-positive limit.
const DefaultMaxNameLength = 128

// Common errors for room operations.
var (
	ErrRoomNotFound = core.NotFound("room not found")
	ErrNameRequired = core.Validation("name is required")
	ErrNameTooLong  = core.Validation("name is too long")
)

// Service is the room directory.
type Service struct {
	store         store.RoomStore
	maxNameLength int
}

// New creates a new room directory.
func New(st store.RoomStore, maxNameLength int) *Service {
	if maxNameLength <= 0 {
		maxNameLength = DefaultMaxNameLength
	}
	return &Service{
		store:         st,
		maxNameLength: maxNameLength,
	}
}

// List returns every room in creation order.
func (s *Service) List(ctx context.Context) ([]*store.Room, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Create adds a room with the given name.
func (s *Service) Create(ctx context.Context, name string) (*store.Room, error) {
	name, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}

	room, err := s.store.CreateRoom(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// Get fetches a room by id.
func (s *Service) Get(ctx context.Context, id int64) (*store.Room, error) {
	room, err := s.store.GetRoomByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get room")
	}
	return room, nil
}

// Update renames a room.
func (s *Service) Update(ctx context.Context, id int64, name string) (*store.Room, error) {
	name, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}

	room, err := s.store.UpdateRoom(ctx, id, name)
	if err != nil {
		return nil, translate(err, "update room")
	}
	return room, nil
}

// Delete removes a room and every message in it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		return translate(err, "delete room")
	}
	return nil
}

func (s *Service) normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > s.maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func translate(err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrRoomNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
