package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/room"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type recordedEvent struct {
	event   db.RoomEvent
	payload EventPayload
}

type fakeRecorder struct {
	mu     sync.Mutex
	rooms  []string
	events []recordedEvent
}

func (f *fakeRecorder) RecordRoom(_ context.Context, roomID string, _ int, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomID)
	return nil
}

func (f *fakeRecorder) RecordEvent(_ context.Context, event db.RoomEvent, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, _ := payload.(EventPayload)
	f.events = append(f.events, recordedEvent{event: event, payload: p})
	return nil
}

func (f *fakeRecorder) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.event.Type)
	}
	return out
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

// newTestApp wires a server around a fresh registry. questions may be nil
// for the default prompt list.
func newTestApp(t *testing.T, questions room.QuestionSource, recorder Recorder) (*httptest.Server, *room.Registry) {
	t.Helper()
	if questions == nil {
		questions = room.NewMemoryQuestions(room.DefaultQuestions()...)
	}
	reg := room.NewRegistry(questions)
	srv := New(reg, recorder, config.Default())
	return newTestServer(t, srv.Handler()), reg
}

func createRoom(t *testing.T, ts *httptest.Server, payload any) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["id"].(string)
}

func joinRoom(t *testing.T, ts *httptest.Server, roomID string, payload map[string]any) (string, bool) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["playerId"].(string), body["isLeader"].(bool)
}

func fetchState(t *testing.T, ts *httptest.Server, roomID, playerID string) room.View {
	t.Helper()
	path := "/api/rooms/" + roomID + "/state"
	if playerID != "" {
		path += "?playerId=" + playerID
	}
	resp := doRequest(t, ts, http.MethodGet, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeView(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func decodeView(t *testing.T, resp *http.Response) room.View {
	t.Helper()
	var view room.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
}

func expectError(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()
	expectStatus(t, resp, status)
	body := decodeBody(t, resp)
	if body["error"] != message {
		t.Fatalf("expected error %q, got %#v", message, body["error"])
	}
}
