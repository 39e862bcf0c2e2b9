package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

// oneMoveLevel is solved after two ticks: the mover reaches the enemy.
const oneMoveLevel = "1/3,1/0,0-0,0/1MR1x1E"

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	cat, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	opts := Options{
		Catalog:        cat,
		Logger:         log.New(io.Discard),
		StreamInterval: time.Millisecond,
		MaxTicks:       50,
	}
	if withStore {
		store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		opts.Store = store
	}
	srv := httptest.NewServer(New(opts))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	var got map[string]string
	if code := doJSON(t, "GET", srv.URL+"/healthz", nil, &got); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if got["status"] != "ok" || got["version"] != "1" {
		t.Errorf("health = %v", got)
	}
}

func TestCollectionsAndLevels(t *testing.T) {
	srv := newTestServer(t, false)

	var cols []collectionResponse
	if code := doJSON(t, "GET", srv.URL+"/collections", nil, &cols); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(cols) != 3 || cols[0].ID != "starter" || cols[0].Levels != 13 {
		t.Fatalf("collections = %+v", cols)
	}

	var lvl levelResponse
	if code := doJSON(t, "GET", srv.URL+"/collections/intermediate/levels/1", nil, &lvl); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if lvl.Name != "Helicopter" || lvl.Width == 0 || lvl.Enemies == 0 {
		t.Errorf("level = %+v", lvl)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/collections/starter/levels/99", http.StatusNotFound},
		{"/collections/nope/levels/1", http.StatusNotFound},
		{"/collections/starter/levels/one", http.StatusBadRequest},
	}
	for _, tt := range tests {
		var e errorResponse
		if code := doJSON(t, "GET", srv.URL+tt.path, nil, &e); code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, code, tt.want)
		}
	}
}

func TestStep(t *testing.T) {
	srv := newTestServer(t, false)

	tests := []struct {
		name       string
		req        stepRequest
		wantBoard  string
		wantStatus string
		wantTicks  int
	}{
		{"default single tick", stepRequest{Board: oneMoveLevel}, "1/3,1/0,0-0,0/1x1MR1E", "ongoing", 1},
		{"stops when completed", stepRequest{Board: oneMoveLevel, Ticks: 5}, "1/3,1/0,0-0,0/3x", "completed", 2},
		{"stops when blocked", stepRequest{Board: "1/2,1/0,0-0,0/1I1E", Ticks: 5}, "1/2,1/0,0-0,0/1I1E", "blocked", 1},
		{"custom phases", stepRequest{Board: oneMoveLevel, Ticks: 1, Phases: []string{"move", "rotate", "generate"}}, "1/3,1/0,0-0,0/1x1MR1E", "ongoing", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got stepResponse
			if code := doJSON(t, "POST", srv.URL+"/step", tt.req, &got); code != http.StatusOK {
				t.Fatalf("status = %d", code)
			}
			if got.Board != tt.wantBoard || got.Status != tt.wantStatus || got.Ticks != tt.wantTicks {
				t.Errorf("got %+v, want {%s %s %d}", got, tt.wantBoard, tt.wantStatus, tt.wantTicks)
			}
		})
	}
}

func TestStepRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, false)

	tests := []struct {
		name      string
		req       stepRequest
		wantField string
	}{
		{"bad size", stepRequest{Board: "1/0,1/0,0-0,0/1x"}, "size"},
		{"bad version", stepRequest{Board: "2/1,1/0,0-0,0/1x"}, "version"},
		{"bad cells", stepRequest{Board: "1/2,1/0,0-0,0/1Q1x"}, "cells"},
		{"too many ticks", stepRequest{Board: oneMoveLevel, Ticks: 51}, ""},
		{"unknown phase", stepRequest{Board: oneMoveLevel, Phases: []string{"spin"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got errorResponse
			if code := doJSON(t, "POST", srv.URL+"/step", tt.req, &got); code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", code)
			}
			if got.Field != tt.wantField {
				t.Errorf("field = %q, want %q", got.Field, tt.wantField)
			}
			if got.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t, false)

	var ok validateResponse
	if code := doJSON(t, "POST", srv.URL+"/validate", validateRequest{Board: oneMoveLevel}, &ok); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !ok.Valid || ok.Width != 3 || ok.Height != 1 || ok.Board != oneMoveLevel {
		t.Errorf("validate = %+v", ok)
	}

	var bad errorResponse
	if code := doJSON(t, "POST", srv.URL+"/validate", validateRequest{Board: "nonsense"}, &bad); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if bad.Field != "fields" {
		t.Errorf("field = %q, want fields", bad.Field)
	}
}

func TestBoards(t *testing.T) {
	srv := newTestServer(t, true)

	var saved boardResponse
	if code := doJSON(t, "PUT", srv.URL+"/boards/demo", validateRequest{Board: oneMoveLevel}, &saved); code != http.StatusOK {
		t.Fatalf("PUT status = %d", code)
	}
	if saved.Name != "demo" || saved.Board != oneMoveLevel {
		t.Errorf("saved = %+v", saved)
	}

	var e errorResponse
	if code := doJSON(t, "PUT", srv.URL+"/boards/broken", validateRequest{Board: "1/0,0/x"}, &e); code != http.StatusBadRequest {
		t.Errorf("PUT invalid = %d, want 400", code)
	}

	var list []boardResponse
	if code := doJSON(t, "GET", srv.URL+"/boards", nil, &list); code != http.StatusOK {
		t.Fatalf("GET status = %d", code)
	}
	if len(list) != 1 || list[0].Name != "demo" {
		t.Errorf("list = %+v", list)
	}

	if code := doJSON(t, "DELETE", srv.URL+"/boards/demo", nil, nil); code != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", code)
	}
	if code := doJSON(t, "GET", srv.URL+"/boards/demo", nil, &e); code != http.StatusNotFound {
		t.Errorf("GET deleted = %d, want 404", code)
	}
}

func TestBoardsNotRoutedWithoutStore(t *testing.T) {
	srv := newTestServer(t, false)
	resp, err := http.Get(srv.URL + "/boards")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunStream(t *testing.T) {
	srv := newTestServer(t, false)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/run?board=" + oneMoveLevel + "&interval=1"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	var frames []frame
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("ReadJSON: %v", err)
			}
			break
		}
		frames = append(frames, f)
	}

	want := []frame{
		{0, oneMoveLevel, "ongoing"},
		{1, "1/3,1/0,0-0,0/1x1MR1E", "ongoing"},
		{2, "1/3,1/0,0-0,0/3x", "completed"},
	}
	if len(frames) != len(want) {
		t.Fatalf("frames = %+v, want %+v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d = %+v, want %+v", i, frames[i], want[i])
		}
	}
}

func TestRunStreamRejectsBadBoard(t *testing.T) {
	srv := newTestServer(t, false)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/run?board=1/0,1/0,0-0,0/1x"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Dial succeeded for a malformed board")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, want 400", resp)
	}
}
