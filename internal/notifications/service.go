// Package notifications delivers sync outcomes via ntfy push messages.
//
// The default implementation publishes to the topic configured in config.toml
// and degrades to a no-op when no topic is set, so pipeline code can notify
// unconditionally.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitsync/internal/config"
)

const userAgent = "fitsync/0.1.0"

// Service defines the notification surface exposed to the sync pipeline.
type Service interface {
	NotifyUploadCompleted(ctx context.Context, activityName string, activityID int64) error
	NotifyDuplicateSkipped(ctx context.Context, activityName string) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyUploadCompleted(ctx context.Context, activityName string, activityID int64) error {
	data := payload{
		title:   "Fitsync - Uploaded",
		message: fmt.Sprintf("Uploaded to Garmin Connect: %s (activity %d)", strings.TrimSpace(activityName), activityID),
		tags:    []string{"fitsync", "upload", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyDuplicateSkipped(ctx context.Context, activityName string) error {
	data := payload{
		title:   "Fitsync - Duplicate Skipped",
		message: fmt.Sprintf("Skipped upload: %s already exists in Garmin Connect", strings.TrimSpace(activityName)),
		tags:    []string{"fitsync", "duplicate", "skipped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Sync failed")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	if err != nil {
		builder.WriteString(": ")
		builder.WriteString(err.Error())
	}
	data := payload{
		title:    "Fitsync - Error",
		message:  builder.String(),
		tags:     []string{"fitsync", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Fitsync - Test",
		message:  "Notification system test",
		tags:     []string{"fitsync", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyUploadCompleted(context.Context, string, int64) error { return nil }
func (noopService) NotifyDuplicateSkipped(context.Context, string) error       { return nil }
func (noopService) NotifyError(context.Context, error, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
