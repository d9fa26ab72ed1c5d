package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) when a lookup id does not resolve.
var ErrNotFound = errors.New("record not found")

// Room represents a chat room.
type Room struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message represents a persisted chat message.
type Message struct {
	ID        int64
	RoomID    int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomStore handles room persistence.
type RoomStore interface {
	// CreateRoom creates a new room.
	CreateRoom(ctx context.Context, name string) (*Room, error)

	// GetRoomByID retrieves a room by ID.
	GetRoomByID(ctx context.Context, id int64) (*Room, error)

	// ListRooms lists all rooms in creation order.
	ListRooms(ctx context.Context) ([]*Room, error)

	// UpdateRoom renames a room.
	UpdateRoom(ctx context.Context, id int64, name string) (*Room, error)

	// DeleteRoom removes a room together with all of its messages.
	DeleteRoom(ctx context.Context, id int64) error
}

// MessageStore handles message persistence.
// Every lookup is scoped to the parent room: a message id that belongs to
// another room is reported as ErrNotFound.
type MessageStore interface {
	// CreateMessage persists a message under roomID.
	CreateMessage(ctx context.Context, roomID int64, body string) (*Message, error)

	// GetMessage retrieves a message of a room.
	GetMessage(ctx context.Context, roomID, id int64) (*Message, error)

	// ListMessages retrieves all messages of a room in creation order.
	ListMessages(ctx context.Context, roomID int64) ([]*Message, error)

	// UpdateMessage replaces the body of a message.
	UpdateMessage(ctx context.Context, roomID, id int64, body string) (*Message, error)

	// DeleteMessage removes a message.
	DeleteMessage(ctx context.Context, roomID, id int64) error
}

// Store aggregates all storage interfaces.
type Store interface {
	RoomStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
