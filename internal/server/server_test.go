package server

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"sketch-party/internal/room"
)

func TestHealth(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	resp := doRequest(t, ts, http.MethodGet, "/health", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestRequestIDEchoed(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)

	resp := doRequest(t, ts, http.MethodGet, "/health", nil)
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected request id abc-123, got %q", got)
	}
}

func TestCreateRoom(t *testing.T) {
	ts, reg := newTestApp(t, nil, nil)

	roomID := createRoom(t, ts, map[string]any{"answerSeconds": 45, "passcode": "1234"})
	view, ok := reg.Get(roomID)
	if !ok {
		t.Fatalf("expected room %s to exist", roomID)
	}
	if view.AnswerSeconds != 45 || !view.HasPasscode {
		t.Fatalf("unexpected room %#v", view)
	}

	defaulted := createRoom(t, ts, nil)
	view, _ = reg.Get(defaulted)
	if view.AnswerSeconds != 60 || view.HasPasscode {
		t.Fatalf("expected default settings, got %#v", view)
	}
}

func TestCreateRoomRejectsBadSettings(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	for _, seconds := range []int{0, -5, 601} {
		resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{"answerSeconds": seconds})
		expectError(t, resp, http.StatusBadRequest, "answerSeconds out of range")
	}
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{"answerSeconds": "soon"})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestJoinLeadership(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, map[string]any{"answerSeconds": 60})

	_, aliceLeads := joinRoom(t, ts, roomID, map[string]any{"name": "Alice", "isLeader": true})
	if !aliceLeads {
		t.Fatalf("expected Alice to lead")
	}
	_, bobLeads := joinRoom(t, ts, roomID, map[string]any{"name": "Bob", "isLeader": true})
	if bobLeads {
		t.Fatalf("expected Bob not to lead")
	}
}

func TestJoinPasscode(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, map[string]any{"passcode": "1234"})

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]any{
		"name":     "Eve",
		"passcode": "0000",
	})
	expectError(t, resp, http.StatusForbidden, "invalid passcode")

	joinRoom(t, ts, roomID, map[string]any{"name": "Ada", "passcode": "1234"})
}

func TestJoinErrors(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/nosuchrm/join", map[string]any{"name": "Ada"})
	expectError(t, resp, http.StatusNotFound, "not found")

	roomID := createRoom(t, ts, nil)
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]any{
		"name": strings.Repeat("a", maxNameLength+1),
	})
	expectError(t, resp, http.StatusBadRequest, "name must be 20 characters or fewer")

	playerID, _ := joinRoom(t, ts, roomID, map[string]any{"name": "  "})
	view := fetchState(t, ts, roomID, playerID)
	if player, _ := view.Player(playerID); player.Name != room.DefaultPlayerName {
		t.Fatalf("expected default name, got %q", player.Name)
	}
}

func TestLeaveRoom(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, nil)
	playerID, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Ada"})

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/leave", map[string]any{})
	expectError(t, resp, http.StatusBadRequest, "no playerId")

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/leave", map[string]any{"playerId": playerID})
	expectStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID+"/state", nil)
	expectError(t, resp, http.StatusNotFound, "not found")

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/leave", map[string]any{"playerId": playerID})
	expectStatus(t, resp, http.StatusNoContent)
}

func TestRoundFlow(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, map[string]any{"answerSeconds": 60})
	alice, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Alice", "isLeader": true})
	bob, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Bob"})

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", map[string]any{})
	expectStatus(t, resp, http.StatusOK)
	view := decodeView(t, resp)
	if view.Round == nil || view.Round.Index != 1 || view.Round.Status != room.StatusAnswering {
		t.Fatalf("expected round 1 answering, got %#v", view.Round)
	}
	if view.Round.Question == "" {
		t.Fatalf("expected a question from the prompt list")
	}

	carol, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Carol"})

	for _, playerID := range []string{alice, bob} {
		resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{
			"playerId": playerID,
			"answer":   "data:image/png;base64,AAAA",
		})
		expectStatus(t, resp, http.StatusOK)
	}
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{
		"playerId": carol,
		"answer":   "too early",
	})
	expectStatus(t, resp, http.StatusOK)

	view = fetchState(t, ts, roomID, alice)
	if view.Round.Status != room.StatusRevealed {
		t.Fatalf("expected revealed round, got %s", view.Round.Status)
	}
	if len(view.Round.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(view.Round.Answers))
	}
	if _, ok := view.Round.Answers[carol]; ok {
		t.Fatalf("expected mid-round joiner answer to be ignored")
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", map[string]any{"customQuestion": "  A cat on a bike "})
	expectStatus(t, resp, http.StatusOK)
	view = decodeView(t, resp)
	if view.Round.Index != 2 || view.Round.Question != "A cat on a bike" {
		t.Fatalf("expected custom round 2, got %#v", view.Round)
	}
	player, _ := view.Player(carol)
	if player.Submitted || player.Participation != room.Pending {
		t.Fatalf("expected Carol to play round 2, got %#v", player)
	}
}

func TestNextRoundNoMoreQuestions(t *testing.T) {
	ts, _ := newTestApp(t, room.NewMemoryQuestions(), nil)
	roomID := createRoom(t, ts, nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", nil)
	expectError(t, resp, http.StatusConflict, "no_more_questions")

	view := fetchState(t, ts, roomID, "")
	if view.Round != nil {
		t.Fatalf("expected no round, got %#v", view.Round)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/missing1/next", nil)
	expectError(t, resp, http.StatusNotFound, "not found")
}

func TestSubmitErrors(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, nil)
	playerID, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Ada"})

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{"playerId": playerID, "answer": "x"})
	expectError(t, resp, http.StatusNotFound, "room/round not found")

	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", nil)
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{"playerId": "ghost", "answer": "x"})
	expectError(t, resp, http.StatusNotFound, "player not found")

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{"playerId": playerID})
	expectStatus(t, resp, http.StatusOK)
	view := decodeView(t, resp)
	if answer, ok := view.Round.Answers[playerID]; !ok || answer != "" {
		t.Fatalf("expected empty answer recorded, got %q %v", answer, ok)
	}
}

func TestJudgeRound(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, nil)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/judge", map[string]any{"result": "success"})
	expectError(t, resp, http.StatusNotFound, "room/round not found")

	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", nil)

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/judge", map[string]any{"result": "maybe"})
	expectError(t, resp, http.StatusBadRequest, "invalid result")

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/judge", map[string]any{"result": "success"})
	expectStatus(t, resp, http.StatusOK)
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/judge", map[string]any{"result": "fail"})
	expectStatus(t, resp, http.StatusOK)
	view := decodeView(t, resp)
	if view.Round.Result != room.VerdictFail || view.SuccessCount != 1 || view.FailCount != 1 {
		t.Fatalf("expected fail verdict with both tallies at 1, got %#v", view)
	}
}

func TestStateHidesPasscode(t *testing.T) {
	ts, _ := newTestApp(t, nil, nil)
	roomID := createRoom(t, ts, map[string]any{"passcode": "secret-code"})

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID+"/state", nil)
	expectStatus(t, resp, http.StatusOK)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := string(data)
	if strings.Contains(body, "secret-code") {
		t.Fatalf("expected passcode to stay private, got %s", body)
	}
	if !strings.Contains(body, `"hasPasscode":true`) || !strings.Contains(body, `"round":null`) {
		t.Fatalf("unexpected state body %s", body)
	}
}

func TestLedgerReceivesLifecycleEvents(t *testing.T) {
	recorder := &fakeRecorder{}
	ts, _ := newTestApp(t, nil, recorder)
	roomID := createRoom(t, ts, nil)
	playerID, _ := joinRoom(t, ts, roomID, map[string]any{"name": "Ada", "isLeader": true})
	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/next", nil)
	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/submit", map[string]any{"playerId": playerID, "answer": "x"})
	fetchState(t, ts, roomID, playerID)
	fetchState(t, ts, roomID, playerID)
	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/judge", map[string]any{"result": "success"})
	doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/leave", map[string]any{"playerId": playerID})

	if len(recorder.rooms) != 1 || recorder.rooms[0] != roomID {
		t.Fatalf("expected room %s recorded, got %v", roomID, recorder.rooms)
	}
	expected := []string{
		eventRoomCreated,
		eventPlayerJoined,
		eventRoundStarted,
		eventRoundRevealed,
		eventRoundJudged,
		eventPlayerLeft,
	}
	got := recorder.types()
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected events %v, got %v", expected, got)
	}
	for _, recorded := range recorder.events {
		if recorded.event.RoomID != roomID {
			t.Fatalf("expected events for room %s, got %s", roomID, recorded.event.RoomID)
		}
	}
}
