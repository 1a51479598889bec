package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelfscan/internal/config"
)

const userAgent = "Shelfscan-Go/0.1.0"

// Service defines the notification surface exposed to the CLI commands.
type Service interface {
	NotifyScanResolved(ctx context.Context, matched, unmatched, owned int) error
	NotifyCollectionUpdated(ctx context.Context, user string, added, duplicates int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:   topic,
		client:     client,
		scan:       cfg.Notifications.Scan,
		collection: cfg.Notifications.Collection,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	scan       bool
	collection bool
	errors     bool
}

func (n *ntfyService) NotifyScanResolved(ctx context.Context, matched, unmatched, owned int) error {
	if !n.scan {
		return nil
	}
	var message string
	if unmatched == 0 {
		message = fmt.Sprintf("Scan resolved: %d titles matched, %d already owned", matched, owned)
	} else {
		message = fmt.Sprintf("Scan resolved: %d matched, %d unmatched, %d already owned", matched, unmatched, owned)
	}
	data := payload{
		title:   "Shelfscan - Scan Resolved",
		message: message,
		tags:    []string{"shelfscan", "scan", "resolved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCollectionUpdated(ctx context.Context, user string, added, duplicates int) error {
	if !n.collection {
		return nil
	}
	user = strings.TrimSpace(user)
	message := fmt.Sprintf("Added %d games to %s's collection", added, user)
	if duplicates > 0 {
		message = fmt.Sprintf("%s (%d already owned)", message, duplicates)
	}
	data := payload{
		title:    "Shelfscan - Collection Updated",
		message:  message,
		tags:     []string{"shelfscan", "collection", "added"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shelfscan - Error",
		message:  builder.String(),
		tags:     []string{"shelfscan", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shelfscan - Test",
		message:  "Notification system test",
		tags:     []string{"shelfscan", "test"},
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

func (noopService) NotifyScanResolved(context.Context, int, int, int) error         { return nil }
func (noopService) NotifyCollectionUpdated(context.Context, string, int, int) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                { return nil }
func (noopService) TestNotification(context.Context) error                          { return nil }
