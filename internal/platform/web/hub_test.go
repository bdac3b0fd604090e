package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
)

func startHub(t *testing.T) (*Hub, string, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(cancel)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, expected %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub, url, _ := startHub(t)
	a, b := dial(t, url), dial(t, url)
	waitClients(t, hub, 2)

	sess, err := defense.NewSession(defense.Options{})
	if err != nil {
		t.Fatal(err)
	}
	sess.TogglePause()
	sess.StartWave()
	if err := hub.Broadcast(SnapshotFrame(sess, true)); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		//nolint:errcheck
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if f.Summary.Wave != 2 || f.Summary.Enemies != 5 || f.Summary.Status != "playing" {
			t.Errorf("summary = %+v", f.Summary)
		}
		if f.State == nil || len(f.State.Enemies) != 5 {
			t.Error("full frame should carry the state")
		}
	}
}

func TestHubSummaryOnlyFrame(t *testing.T) {
	sess, err := defense.NewSession(defense.Options{})
	if err != nil {
		t.Fatal(err)
	}
	f := SnapshotFrame(sess, false)
	if f.State != nil || f.Summary.Lives != 20 {
		t.Errorf("frame = %+v", f)
	}
}

func TestHubDropsDisconnected(t *testing.T) {
	hub, url, _ := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub, url, cancel := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	cancel()
	//nolint:errcheck
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close")
	}
	if hub.Clients() != 0 {
		t.Errorf("clients = %d after shutdown", hub.Clients())
	}
}

func TestStreamPublishes(t *testing.T) {
	hub, url, _ := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	sess, err := defense.NewSession(defense.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Stream(ctx, sess, 10*time.Millisecond, false)

	//nolint:errcheck
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if f.Summary.Status != "paused" || f.State != nil {
		t.Errorf("frame = %+v", f)
	}
}
