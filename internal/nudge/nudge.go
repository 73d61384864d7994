package nudge

import (
	"fmt"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"nippo/internal/config"
)

// StartScheduler runs the daily submit reminder on the configured schedule.
// The returned cron is already started; callers block for as long as
// reminders should keep firing.
func StartScheduler(cfg config.Config, client *http.Client) (*cron.Cron, error) {
	if cfg.SlackWebhookURL == "" {
		return nil, fmt.Errorf("slack_webhook_url is required for reminders")
	}

	hour, min, err := config.ParseClock(cfg.RemindTime)
	if err != nil {
		return nil, fmt.Errorf("invalid remind_time '%s': %w", cfg.RemindTime, err)
	}

	spec := fmt.Sprintf("%d %d * * %s", min, hour, cfg.RemindDays)
	c := cron.New(cron.WithLocation(cfg.Location))
	if _, err := c.AddFunc(spec, func() { sendReminder(cfg, client) }); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c.Start()
	log.Printf("Reminder scheduled at %02d:%02d on %s", hour, min, cfg.RemindDays)
	return c, nil
}

func sendReminder(cfg config.Config, client *http.Client) {
	msg := &slack.WebhookMessage{
		Text: "本日の日報がまだの方はお忘れなく！ `nippo report submit -f report.yaml` で提出できます。",
	}
	if err := slack.PostWebhookCustomHTTP(cfg.SlackWebhookURL, client, msg); err != nil {
		log.Printf("Error sending reminder: %v", err)
		return
	}
	log.Println("Sent daily reminder")
}
