package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelfscan/internal/config"
	"shelfscan/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyScanResolved(context.Background(), 3, 1, 0); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "scan resolved clean",
			notify: func(svc notifications.Service) error {
				return svc.NotifyScanResolved(context.Background(), 4, 0, 2)
			},
			expectTitle:   "Shelfscan - Scan Resolved",
			expectMessage: "Scan resolved: 4 titles matched, 2 already owned",
			expectTags:    "shelfscan,scan,resolved",
		},
		{
			name: "scan resolved with unmatched",
			notify: func(svc notifications.Service) error {
				return svc.NotifyScanResolved(context.Background(), 3, 1, 0)
			},
			expectTitle:   "Shelfscan - Scan Resolved",
			expectMessage: "Scan resolved: 3 matched, 1 unmatched, 0 already owned",
			expectTags:    "shelfscan,scan,resolved",
		},
		{
			name: "collection updated",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCollectionUpdated(context.Background(), "alice", 2, 1)
			},
			expectTitle:    "Shelfscan - Collection Updated",
			expectMessage:  "Added 2 games to alice's collection (1 already owned)",
			expectTags:     "shelfscan,collection,added",
			expectPriority: "high",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("catalog unreachable"), "resolve")
			},
			expectTitle:    "Shelfscan - Error",
			expectMessage:  "Error with resolve: catalog unreachable",
			expectTags:     "shelfscan,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Shelfscan - Test",
			expectMessage:  "Notification system test",
			expectTags:     "shelfscan,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Scan = false
	cfg.Notifications.Collection = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyScanResolved(context.Background(), 1, 0, 0); err != nil {
		t.Fatalf("suppressed scan notification returned error: %v", err)
	}
	if err := svc.NotifyCollectionUpdated(context.Background(), "alice", 1, 0); err != nil {
		t.Fatalf("suppressed collection notification returned error: %v", err)
	}
	if err := svc.NotifyError(context.Background(), errors.New("boom"), "commit"); err != nil {
		t.Fatalf("suppressed error notification returned error: %v", err)
	}
}

func TestNtfyServiceSurfacesHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
