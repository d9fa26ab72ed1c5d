package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/roomlog/internal/core"
	"github.com/vovakirdan/roomlog/internal/store"
)

// DefaultMaxBodyBytes is used when the service is built with a non-positive limit.
const DefaultMaxBodyBytes = 4096

// Common errors for message operations.
var (
	ErrRoomNotFound    = core.NotFound("room not found")
	ErrMessageNotFound = core.NotFound("message not found")
	ErrBodyRequired    = core.Validation("body is required")
	ErrBodyTooLong     = core.Validation("body is too long")
)

// Store is the persistence the message log needs: room lookups plus messages.
type Store interface {
	GetRoomByID(ctx context.Context, id int64) (*store.Room, error)
	store.MessageStore
}

// Service is the message log of every room.
type Service struct {
	store        Store
	maxBodyBytes int
}

// New creates a new message log.
func New(st Store, maxBodyBytes int) *Service {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Service{
		store:        st,
		maxBodyBytes: maxBodyBytes,
	}
}

// List returns the messages of a room in creation order.
func (s *Service) List(ctx context.Context, roomID int64) ([]*store.Message, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Create posts a message to a room.
func (s *Service) Create(ctx context.Context, roomID int64, body string) (*store.Message, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	if err := s.validateBody(body); err != nil {
		return nil, err
	}

	msg, err := s.store.CreateMessage(ctx, roomID, body)
	if err != nil {
		// The room may have been deleted between the check and the insert.
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// Get fetches one message of a room.
func (s *Service) Get(ctx context.Context, roomID, id int64) (*store.Message, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	msg, err := s.store.GetMessage(ctx, roomID, id)
	if err != nil {
		return nil, translate(err, "get message")
	}
	return msg, nil
}

// Update replaces the body of a message.
func (s *Service) Update(ctx context.Context, roomID, id int64, body string) (*store.Message, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	if err := s.validateBody(body); err != nil {
		return nil, err
	}

	msg, err := s.store.UpdateMessage(ctx, roomID, id, body)
	if err != nil {
		return nil, translate(err, "update message")
	}
	return msg, nil
}

// Delete removes a message from a room.
func (s *Service) Delete(ctx context.Context, roomID, id int64) error {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return err
	}

	if err := s.store.DeleteMessage(ctx, roomID, id); err != nil {
		return translate(err, "delete message")
	}
	return nil
}

func (s *Service) requireRoom(ctx context.Context, roomID int64) error {
	if _, err := s.store.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("get room: %w", err)
	}
	return nil
}

func (s *Service) validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrBodyRequired
	}
	if len(body) > s.maxBodyBytes {
		return ErrBodyTooLong
	}
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrMessageNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
