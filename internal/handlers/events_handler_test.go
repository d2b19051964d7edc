package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/HeyDYF/Money-Manager/internal/events"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/models"
)

func startEventsServer(t *testing.T, hub *events.Hub, origins []string) string {
	t.Helper()
	r := gin.New()
	r.GET("/events", NewEventsHandler(hub, origins).Stream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
}

func waitForSubscribers(t *testing.T, hub *events.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, got %d", n, hub.Subscribers())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEventsHandler_Stream(t *testing.T) {
	hub := events.NewHub(4)
	url := startEventsServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hub, 1)

	hub.AchievementsUnlocked([]models.AchievementID{ledger.AchievementFirstTransaction})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev events.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != events.TypeAchievementUnlocked || ev.Achievement != ledger.AchievementFirstTransaction {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Title == "" {
		t.Error("expected catalog title on event")
	}

	_ = conn.Close()
	waitForSubscribers(t, hub, 0)
}

func TestEventsHandler_RejectsForeignOrigin(t *testing.T) {
	hub := events.NewHub(4)
	url := startEventsServer(t, hub, []string{"http://localhost:3000"})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
	waitForSubscribers(t, hub, 0)

	header.Set("Origin", "http://localhost:3000")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial with allowed origin: %v", err)
	}
	_ = conn.Close()
}
