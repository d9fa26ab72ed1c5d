package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	transporthttp "github.com/vovakirdan/roomlog/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Printf("api_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "http://localhost:8080", "API base URL")
	room := flag.String("room", "general", "room name")
	text := flag.String("text", "hello from smoke test", "message body to post")
	keep := flag.Bool("keep", false, "keep the room instead of deleting it")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := &client{base: *addr, http: &http.Client{}}

	var created transporthttp.RoomResponse
	if err := c.do(ctx, http.MethodPost, "/rooms", map[string]string{"name": *room}, http.StatusCreated, &created); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	fmt.Printf("created room id=%d name=%q\n", created.ID, created.Name)

	msgPath := fmt.Sprintf("/rooms/%d/messages", created.ID)
	var msg transporthttp.MessageResponse
	if err := c.do(ctx, http.MethodPost, msgPath, map[string]string{"body": *text}, http.StatusCreated, &msg); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	fmt.Printf("created message id=%d room_id=%d\n", msg.ID, msg.RoomID)

	var list []transporthttp.MessageResponse
	if err := c.do(ctx, http.MethodGet, msgPath, nil, http.StatusOK, &list); err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	fmt.Printf("room %d has %d message(s)\n", created.ID, len(list))

	if *keep {
		return nil
	}

	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", created.ID), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	var gone transporthttp.ErrorResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", msgPath, msg.ID), nil, http.StatusNotFound, &gone); err != nil {
		return fmt.Errorf("message should be gone: %w", err)
	}
	fmt.Printf("message after room delete: %s (%s)\n", gone.Error.Code, gone.Error.Message)
	return nil
}

type client struct {
	base string
	http *http.Client
}

func (c *client) do(ctx context.Context, method, path string, in any, wantStatus int, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, wantStatus, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
