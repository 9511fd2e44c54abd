package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tasknotify/internal/config"
	"tasknotify/internal/notify"
)

const userAgent = "tasknotify/0.1.0"

// HTTPDoer describes the HTTP client used by the gateway.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type httpGateway struct {
	endpoint  string
	authToken string
	client    HTTPDoer
}

// NewHTTPGateway constructs a gateway that POSTs one message per call to an
// FCM-v1-style endpoint.
func NewHTTPGateway(endpoint, authToken string, client HTTPDoer) Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpGateway{
		endpoint:  strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		authToken: strings.TrimSpace(authToken),
		client:    client,
	}
}

func newHTTPClient(cfg *config.Config) *http.Client {
	timeout := time.Duration(cfg.Push.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Wire types mirror the provider's message schema.
type wireEnvelope struct {
	Message wireMessage `json:"message"`
}

type wireMessage struct {
	Token        string            `json:"token"`
	Notification wireNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *wireAndroid      `json:"android,omitempty"`
	APNS         *wireAPNS         `json:"apns,omitempty"`
}

type wireNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type wireAndroid struct {
	Priority     string              `json:"priority,omitempty"`
	Notification wireAndroidNotifcfg `json:"notification"`
}

type wireAndroidNotifcfg struct {
	ChannelID   string `json:"channel_id,omitempty"`
	ClickAction string `json:"click_action,omitempty"`
	Sound       string `json:"sound,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type wireAPNS struct {
	Payload wireAPNSPayload `json:"payload"`
}

type wireAPNSPayload struct {
	APS wireAPS `json:"aps"`
}

type wireAPS struct {
	Alert wireNotification `json:"alert"`
	Badge int              `json:"badge,omitempty"`
	Sound string           `json:"sound,omitempty"`
}

func (g *httpGateway) Send(ctx context.Context, msg notify.Message) Result {
	if strings.TrimSpace(msg.Token) == "" {
		return Result{Detail: "message has no recipient token"}
	}

	body, err := json.Marshal(envelope(msg))
	if err != nil {
		return Result{Detail: fmt.Sprintf("encode message: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if g.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.authToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{Detail: fmt.Sprintf("send push: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		text := strings.TrimSpace(string(detail))
		return Result{
			Detail:       fmt.Sprintf("provider returned %d: %s", resp.StatusCode, text),
			Unregistered: isUnregistered(resp.StatusCode, text),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return Result{OK: true}
}

func envelope(msg notify.Message) wireEnvelope {
	return wireEnvelope{
		Message: wireMessage{
			Token:        msg.Token,
			Notification: wireNotification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
			Android: &wireAndroid{
				Priority: msg.Android.Priority,
				Notification: wireAndroidNotifcfg{
					ChannelID:   msg.Android.ChannelID,
					ClickAction: msg.Android.ClickAction,
					Sound:       msg.Android.Sound,
					Color:       msg.Android.Color,
					Icon:        msg.Android.Icon,
				},
			},
			APNS: &wireAPNS{
				Payload: wireAPNSPayload{
					APS: wireAPS{
						Alert: wireNotification{Title: msg.Title, Body: msg.Body},
						Badge: msg.APNS.Badge,
						Sound: msg.APNS.Sound,
					},
				},
			},
		},
	}
}

// isUnregistered detects stale-token rejections so callers can log them
// distinctly. The provider reports these as 404 or an UNREGISTERED error code.
func isUnregistered(status int, body string) bool {
	if status == http.StatusNotFound {
		return true
	}
	return strings.Contains(body, "UNREGISTERED")
}
