package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nippo/internal/domain"
)

func newTestNotifier(client *http.Client) *Notifier {
	n := NewNotifier(client)
	n.now = func() time.Time { return time.Date(2026, 8, 31, 18, 45, 0, 0, time.UTC) }
	return n
}

func TestReportSubmittedPayload(t *testing.T) {
	var (
		gotBody        []byte
		gotContentType string
		calls          int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	n := newTestNotifier(server.Client())
	settings := domain.Settings{
		StaffName:      "Alice",
		EmailRecipient: "boss@example.com",
		WebhookURL:     server.URL,
	}
	rep := domain.Report{ID: "r1", StaffName: "Alice", Date: "2026-08-31", WorkHours: "8時間（9:00〜18:00、休憩1時間）"}

	n.ReportSubmitted(settings, rep)

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}

	var payload Payload
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.Type != "daily_report" {
		t.Errorf("type = %q, want daily_report", payload.Type)
	}
	if payload.Timestamp != "2026-08-31T18:45:00Z" {
		t.Errorf("timestamp = %q", payload.Timestamp)
	}
	if payload.Staff != "Alice" || payload.Email != "boss@example.com" {
		t.Errorf("staff/email = %q %q", payload.Staff, payload.Email)
	}
	if payload.Report.ID != "r1" || payload.Report.Date != "2026-08-31" {
		t.Errorf("report = %+v", payload.Report)
	}
}

func TestReportSubmittedSkipsWithoutURL(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	n := newTestNotifier(server.Client())
	n.ReportSubmitted(domain.Settings{}, domain.Report{ID: "r1"})

	if calls != 0 {
		t.Fatalf("expected no calls without a URL, got %d", calls)
	}
}

func TestReportSubmittedToleratesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	n := newTestNotifier(server.Client())
	// Must not panic or block; the outcome is log-only.
	n.ReportSubmitted(domain.Settings{WebhookURL: server.URL}, domain.Report{ID: "r1"})
}

func TestNotifySlack(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	n := newTestNotifier(server.Client())
	rep := domain.Report{ID: "r1", StaffName: "Alice", Date: "2026-08-31", WorkHours: "7.5h (Flex)"}
	n.NotifySlack(server.URL, rep)

	var msg struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(gotBody, &msg); err != nil {
		t.Fatalf("slack body is not JSON: %v", err)
	}
	want := "Alice さんが 2026-08-31 の日報を提出しました（稼働 7.5h (Flex)）"
	if msg.Text != want {
		t.Errorf("text = %q, want %q", msg.Text, want)
	}
}

func TestNotifySlackSkipsWithoutURL(t *testing.T) {
	n := newTestNotifier(http.DefaultClient)
	// No URL means no call at all.
	n.NotifySlack("", domain.Report{ID: "r1"})
}
