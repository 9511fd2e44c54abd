package push_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknotify/internal/logging"
	"tasknotify/internal/notify"
	"tasknotify/internal/push"
	"tasknotify/internal/testsupport"
)

func testMessage() notify.Message {
	return notify.Message{
		Token: "TOK1",
		Title: "New Task!",
		Body:  `Assigned task: "Write report"`,
		Data:  map[string]string{"taskId": "t1", "type": "new_task"},
		Android: notify.AndroidConfig{
			Priority:    "high",
			ChannelID:   "high_importance_channel",
			ClickAction: "FLUTTER_NOTIFICATION_CLICK",
			Sound:       "default",
			Color:       "#1E88E5",
		},
		APNS: notify.APNSConfig{Badge: 1, Sound: "default"},
	}
}

func TestHTTPGatewaySendsEnvelope(t *testing.T) {
	var captured map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := push.NewHTTPGateway(server.URL, "secret", server.Client())
	result := gateway.Send(context.Background(), testMessage())
	if !result.OK {
		t.Fatalf("expected success, got %#v", result)
	}
	if auth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", auth)
	}

	message, ok := captured["message"].(map[string]any)
	if !ok {
		t.Fatalf("missing message envelope: %#v", captured)
	}
	if message["token"] != "TOK1" {
		t.Fatalf("unexpected token: %v", message["token"])
	}
	data, _ := message["data"].(map[string]any)
	if data["taskId"] != "t1" || data["type"] != "new_task" {
		t.Fatalf("unexpected data: %#v", data)
	}
	android, _ := message["android"].(map[string]any)
	androidNotif, _ := android["notification"].(map[string]any)
	if androidNotif["channel_id"] != "high_importance_channel" {
		t.Fatalf("channel id missing from wire payload: %#v", androidNotif)
	}
}

func TestHTTPGatewayWrapsProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"UNREGISTERED"}}`, http.StatusNotFound)
	}))
	defer server.Close()

	gateway := push.NewHTTPGateway(server.URL, "secret", server.Client())
	result := gateway.Send(context.Background(), testMessage())
	if result.OK {
		t.Fatal("expected failed result")
	}
	if !result.Unregistered {
		t.Fatalf("expected unregistered classification, got %#v", result)
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestHTTPGatewayWrapsTransportError(t *testing.T) {
	gateway := push.NewHTTPGateway("http://push.invalid", "secret", failingDoer{})
	result := gateway.Send(context.Background(), testMessage())
	if result.OK || result.Detail == "" {
		t.Fatalf("expected failed result with detail, got %#v", result)
	}
}

func TestHTTPGatewayRejectsEmptyToken(t *testing.T) {
	gateway := push.NewHTTPGateway("http://push.invalid", "secret", failingDoer{})
	msg := testMessage()
	msg.Token = ""
	if result := gateway.Send(context.Background(), msg); result.OK {
		t.Fatal("expected failure for empty token")
	}
}

func TestNewGatewayUnconfiguredIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	gateway := push.NewGateway(cfg, logging.NewNop())
	result := gateway.Send(context.Background(), testMessage())
	if !result.OK {
		t.Fatalf("noop gateway must report success, got %#v", result)
	}
}

func TestNewGatewayDryRunSendsNothing(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithPushEndpoint(server.URL, "secret"))
	cfg.Push.DryRun = true

	gateway := push.NewGateway(cfg, logging.NewNop())
	if result := gateway.Send(context.Background(), testMessage()); !result.OK {
		t.Fatalf("dry run must report success, got %#v", result)
	}
	if requests != 0 {
		t.Fatalf("dry run must not call the provider, saw %d requests", requests)
	}
}
