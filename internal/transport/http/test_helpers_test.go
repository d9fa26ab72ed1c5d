package http

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/config"
	"github.com/vovakirdan/roomlog/internal/service/messages"
	"github.com/vovakirdan/roomlog/internal/service/rooms"
	"github.com/vovakirdan/roomlog/internal/store"
	"github.com/vovakirdan/roomlog/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with migrations applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	logger := zerolog.Nop()
	st, err := sqlite.NewWithSetup(":memory:", func(db *sql.DB) error {
		return sqlite.Migrate(db, &logger)
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// createTestRouter wires the services over st the same way the app does.
func createTestRouter(t *testing.T, st store.Store) *gin.Engine {
	t.Helper()

	disabledLogger := zerolog.Nop()
	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		RequestTimeout:    5 * time.Second,
		MaxRoomNameLength: 64,
		MaxMessageBytes:   1024,
	}

	return NewRouter(
		rooms.New(st, cfg.MaxRoomNameLength),
		messages.New(st, cfg.MaxMessageBytes),
		&cfg,
		&disabledLogger,
	)
}

// doJSON performs a request against handler and returns the recorder.
func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", resp.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, resp *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	if resp.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, resp.Code, resp.Body.String())
	}
	body := decode[ErrorResponse](t, resp)
	if body.Error.Code != code {
		t.Errorf("expected error code %q, got %q", code, body.Error.Code)
	}
	if body.Error.Message == "" {
		t.Errorf("expected error message to be set")
	}
}
