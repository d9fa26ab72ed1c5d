package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	logger := zerolog.Nop()
	s, err := NewWithSetup(":memory:", func(db *sql.DB) error {
		return Migrate(db, &logger)
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestRoomCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx, "general")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if room.ID != 1 {
		t.Errorf("expected first room id 1, got %d", room.ID)
	}
	if room.CreatedAt.IsZero() || room.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps to be set, got %+v", room)
	}

	got, err := s.GetRoomByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoomByID failed: %v", err)
	}
	if got.Name != "general" {
		t.Errorf("expected name 'general', got '%s'", got.Name)
	}

	updated, err := s.UpdateRoom(ctx, room.ID, "random")
	if err != nil {
		t.Fatalf("UpdateRoom failed: %v", err)
	}
	if updated.Name != "random" {
		t.Errorf("expected name 'random', got '%s'", updated.Name)
	}
	if updated.UpdatedAt.Before(room.UpdatedAt) {
		t.Errorf("expected updated_at to move forward")
	}

	if err := s.DeleteRoom(ctx, room.ID); err != nil {
		t.Fatalf("DeleteRoom failed: %v", err)
	}
	if _, err := s.GetRoomByID(ctx, room.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRoomNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetRoomByID(ctx, 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetRoomByID: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateRoom(ctx, 42, "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateRoom: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteRoom(ctx, 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteRoom: expected ErrNotFound, got %v", err)
	}
}

func TestListRoomsCreationOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if rooms == nil || len(rooms) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", rooms)
	}

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		if _, err := s.CreateRoom(ctx, name); err != nil {
			t.Fatalf("failed to create room %s: %v", name, err)
		}
	}

	rooms, err = s.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != len(names) {
		t.Fatalf("expected %d rooms, got %d", len(names), len(rooms))
	}
	for i, room := range rooms {
		if room.Name != names[i] {
			t.Errorf("expected %s at index %d, got %s", names[i], i, room.Name)
		}
	}
}

func TestCreateMessageRequiresRoom(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateMessage(context.Background(), 7, "hi"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessagesScopedToRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	general, err := s.CreateRoom(ctx, "general")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	random, err := s.CreateRoom(ctx, "random")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	msg, err := s.CreateMessage(ctx, general.ID, "hi")
	if err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if msg.RoomID != general.ID || msg.Body != "hi" {
		t.Fatalf("unexpected message %+v", msg)
	}

	// Same id, wrong room.
	if _, err := s.GetMessage(ctx, random.ID, msg.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetMessage: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateMessage(ctx, random.ID, msg.ID, "hijack"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateMessage: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteMessage(ctx, random.ID, msg.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteMessage: expected ErrNotFound, got %v", err)
	}

	got, err := s.GetMessage(ctx, general.ID, msg.ID)
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if got.Body != "hi" {
		t.Errorf("expected body to be untouched, got '%s'", got.Body)
	}
}

func TestListMessagesSkipsDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx, "general")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	other, err := s.CreateRoom(ctx, "other")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	var ids []int64
	for _, body := range []string{"one", "two", "three", "four"} {
		msg, err := s.CreateMessage(ctx, room.ID, body)
		if err != nil {
			t.Fatalf("failed to create message: %v", err)
		}
		ids = append(ids, msg.ID)
	}
	if _, err := s.CreateMessage(ctx, other.ID, "elsewhere"); err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	if err := s.DeleteMessage(ctx, room.ID, ids[1]); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}
	if _, err := s.UpdateMessage(ctx, room.ID, ids[2], "three!"); err != nil {
		t.Fatalf("UpdateMessage failed: %v", err)
	}

	messages, err := s.ListMessages(ctx, room.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}

	expected := []string{"one", "three!", "four"}
	if len(messages) != len(expected) {
		t.Fatalf("expected %d messages, got %d", len(expected), len(messages))
	}
	for i, msg := range messages {
		if msg.Body != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, msg.Body)
		}
	}
}

func TestDeleteRoomCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	room, err := s.CreateRoom(ctx, "general")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	keep, err := s.CreateRoom(ctx, "keep")
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	var doomed []int64
	for _, body := range []string{"a", "b", "c"} {
		msg, err := s.CreateMessage(ctx, room.ID, body)
		if err != nil {
			t.Fatalf("failed to create message: %v", err)
		}
		doomed = append(doomed, msg.ID)
	}
	kept, err := s.CreateMessage(ctx, keep.ID, "survivor")
	if err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	if err := s.DeleteRoom(ctx, room.ID); err != nil {
		t.Fatalf("DeleteRoom failed: %v", err)
	}

	for _, id := range doomed {
		if _, err := s.GetMessage(ctx, room.ID, id); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("message %d: expected ErrNotFound, got %v", id, err)
		}
	}

	var orphans int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM messages WHERE room_id = ?`, room.ID).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected no orphaned messages, got %d", orphans)
	}

	if _, err := s.GetMessage(ctx, keep.ID, kept.ID); err != nil {
		t.Errorf("expected message in other room to survive, got %v", err)
	}
}

func TestMigrateDownAndUp(t *testing.T) {
	s := newTestStore(t)
	logger := zerolog.Nop()

	version, err := SchemaVersion(s.DB(), &logger)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}

	if err := MigrateDown(s.DB(), &logger); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	if _, err := s.ListRooms(context.Background()); err == nil {
		t.Fatalf("expected rooms table to be gone after rollback")
	}

	if err := Migrate(s.DB(), &logger); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if _, err := s.CreateRoom(context.Background(), "back"); err != nil {
		t.Fatalf("expected schema to be usable after re-applying, got %v", err)
	}
}
