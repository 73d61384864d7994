package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"nippo/internal/domain"
)

// Payload is the fixed shape posted to the configured webhook, typically a
// Google Apps Script or Make/Zapier endpoint.
type Payload struct {
	Type      string        `json:"type"`
	Timestamp string        `json:"timestamp"`
	Staff     string        `json:"staff"`
	Email     string        `json:"email"`
	Report    domain.Report `json:"report"`
}

// Notifier forwards submitted reports. Notify-and-ignore-outcome: failures
// are logged, never returned, and never block or roll back the save.
type Notifier struct {
	client *http.Client
	now    func() time.Time
}

func NewNotifier(client *http.Client) *Notifier {
	return &Notifier{client: client, now: time.Now}
}

// ReportSubmitted posts the report to settings.WebhookURL. A missing URL
// skips the call entirely.
func (n *Notifier) ReportSubmitted(settings domain.Settings, rep domain.Report) {
	if settings.WebhookURL == "" {
		log.Println("webhook: URL not configured, skipping")
		return
	}

	payload := Payload{
		Type:      "daily_report",
		Timestamp: n.now().UTC().Format(time.RFC3339),
		Staff:     settings.StaffName,
		Email:     settings.EmailRecipient,
		Report:    rep,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("webhook: marshal payload: %v", err)
		return
	}

	resp, err := n.client.Post(settings.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("webhook: post failed: %v", err)
		return
	}
	// The response body is never read; drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	log.Printf("webhook: sent report %s status=%s", rep.ID, resp.Status)
}

// NotifySlack posts a short submission notice to a Slack incoming webhook.
// Like the generic webhook, failure is logged only.
func (n *Notifier) NotifySlack(webhookURL string, rep domain.Report) {
	if webhookURL == "" {
		return
	}
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("%s さんが %s の日報を提出しました（稼働 %s）", rep.StaffName, rep.Date, rep.WorkHours),
	}
	if err := slack.PostWebhookCustomHTTP(webhookURL, n.client, msg); err != nil {
		log.Printf("webhook: slack notify failed: %v", err)
		return
	}
	log.Printf("webhook: slack notified for report %s", rep.ID)
}
