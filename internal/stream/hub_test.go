package stream

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cellsociety/internal/core"
	_ "cellsociety/internal/sims/life"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func lifeModel(t *testing.T) core.Model {
	t.Helper()
	m, err := core.New(core.Config{Model: "life", Rows: 3, Cols: 4})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestNewFrame(t *testing.T) {
	m := lifeModel(t)
	if err := m.Click(1, 2); err != nil {
		t.Fatal(err)
	}
	f := NewFrame(m)
	if f.Model != "life" || f.Rows != 3 || f.Cols != 4 || f.Topology != "square" || f.Edges != "bounded" {
		t.Fatalf("frame header %+v", f)
	}
	if len(f.Cells) != 12 || f.Cells[1*4+2] != 1 {
		t.Fatalf("cells %v", f.Cells)
	}
	if f.Population["Alive"] != 1 || f.Population["Dead"] != 11 {
		t.Fatalf("population %v", f.Population)
	}
	if len(f.Palette) != 2 || f.Palette[1] != "#ffffff" {
		t.Fatalf("palette %v", f.Palette)
	}
}

func TestViewerReceivesLatestAndLaterFrames(t *testing.T) {
	hub := NewHub(quiet())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	m := lifeModel(t)
	hub.Publish(m)

	conn := dial(t, srv)
	if f := readFrame(t, conn); f.Generation != 0 {
		t.Fatalf("first frame generation %d", f.Generation)
	}

	m.Update()
	hub.Publish(m)
	if f := readFrame(t, conn); f.Generation != 1 {
		t.Fatalf("second frame generation %d", f.Generation)
	}
}

func TestClickBecomesCommand(t *testing.T) {
	hub := NewHub(quiet())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	if err := conn.WriteJSON(Message{Type: "click", Row: 2, Col: 3}); err != nil {
		t.Fatal(err)
	}

	m := lifeModel(t)
	select {
	case cmd := <-hub.Inbox():
		if err := cmd(m); err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("click never reached the inbox")
	}
	if st, _ := m.State(2, 3); st != 1 {
		t.Fatalf("clicked cell state %d", st)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	hub := NewHub(quiet())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/frame")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("frame before publish: status %d", resp.StatusCode)
	}

	hub.Publish(lifeModel(t))
	resp, err = http.Get(srv.URL + "/frame")
	if err != nil {
		t.Fatal(err)
	}
	var f Frame
	err = json.NewDecoder(resp.Body).Decode(&f)
	resp.Body.Close()
	if err != nil || f.Model != "life" {
		t.Fatalf("frame %+v, err %v", f, err)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "healthy" {
		t.Fatalf("health %v", health)
	}
}
