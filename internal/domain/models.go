package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type WorkType string

const (
	WorkTypeStandard WorkType = "standard"
	WorkTypeFlex     WorkType = "flex"
)

// Category keys are fixed; reports always carry all four buckets.
const (
	CategorySNS    = "sns"
	CategoryWix    = "wix"
	CategoryDesign = "design"
	CategoryOther  = "other"
)

var CategoryKeys = []string{CategorySNS, CategoryWix, CategoryDesign, CategoryOther}

var CategoryLabels = map[string]string{
	CategorySNS:    "SNS運用",
	CategoryWix:    "Wix実装",
	CategoryDesign: "デザイン",
	CategoryOther:  "その他",
}

type CategoryHours struct {
	SNS    float64 `json:"sns" yaml:"sns"`
	Wix    float64 `json:"wix" yaml:"wix"`
	Design float64 `json:"design" yaml:"design"`
	Other  float64 `json:"other" yaml:"other"`
}

func (c CategoryHours) Total() float64 {
	return c.SNS + c.Wix + c.Design + c.Other
}

func (c CategoryHours) Get(key string) float64 {
	switch key {
	case CategorySNS:
		return c.SNS
	case CategoryWix:
		return c.Wix
	case CategoryDesign:
		return c.Design
	case CategoryOther:
		return c.Other
	}
	return 0
}

type CategoryTexts struct {
	SNS    string `json:"sns" yaml:"sns"`
	Wix    string `json:"wix" yaml:"wix"`
	Design string `json:"design" yaml:"design"`
	Other  string `json:"other" yaml:"other"`
}

func (c CategoryTexts) Get(key string) string {
	switch key {
	case CategorySNS:
		return c.SNS
	case CategoryWix:
		return c.Wix
	case CategoryDesign:
		return c.Design
	case CategoryOther:
		return c.Other
	}
	return ""
}

// Report is one submitted daily report. StaffName is a denormalized snapshot:
// renaming a staff member never rewrites it on historical reports.
type Report struct {
	ID               string        `json:"id"`
	CreatedAt        string        `json:"createdAt"`   // ISO timestamp
	SubmittedAt      string        `json:"submittedAt"` // human-readable local time
	StaffName        string        `json:"staffName"`
	Date             string        `json:"date"` // YYYY-MM-DD
	WorkType         WorkType      `json:"workType"`
	WorkHours        string        `json:"workHours"`
	CategoryHours    CategoryHours `json:"categoryHours"`
	CategoryTexts    CategoryTexts `json:"categoryTexts"`
	WorkContent      string        `json:"workContent"`
	Learnings        string        `json:"learnings"`
	Issues           string        `json:"issues"`
	TomorrowSchedule string        `json:"tomorrowSchedule"`
	RawText          string        `json:"rawText"`
}

type Staff struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"` // ISO timestamp
	Color    string `json:"color"`
}

// Settings is a singleton record, lazily defaulted field by field on read.
type Settings struct {
	StaffName        string `json:"staffName"` // default submitter for webhook payloads
	WebhookURL       string `json:"webhookUrl"`
	EmailRecipient   string `json:"emailRecipient"`
	ReportTemplate   string `json:"reportTemplate"`
	DefaultWorkHours string `json:"defaultWorkHours"`
}

const DefaultWorkHours = "8時間（9:00〜18:00、休憩1時間）"

const DefaultTemplate = `━━━━━━━━━━━━━━━━━━━━━━
業務日報
━━━━━━━━━━━━━━━━━━━━━━

【日付】{{date}}

【稼働時間】{{workHours}}

━━━━━━━━━━━━━━━━━━━━━━
【本日の業務内容】
━━━━━━━━━━━━━━━━━━━━━━

{{workContent}}

━━━━━━━━━━━━━━━━━━━━━━
【学んだこと・気づいたこと】
━━━━━━━━━━━━━━━━━━━━━━

{{learnings}}

━━━━━━━━━━━━━━━━━━━━━━
【困っていること・質問】
━━━━━━━━━━━━━━━━━━━━━━

{{issues}}

━━━━━━━━━━━━━━━━━━━━━━
【明日の予定】
━━━━━━━━━━━━━━━━━━━━━━

{{tomorrowSchedule}}

━━━━━━━━━━━━━━━━━━━━━━`

func (s Settings) WithDefaults() Settings {
	if s.ReportTemplate == "" {
		s.ReportTemplate = DefaultTemplate
	}
	if s.DefaultWorkHours == "" {
		s.DefaultWorkHours = DefaultWorkHours
	}
	return s
}

type Sentiment string

const (
	SentimentPositive  Sentiment = "positive"
	SentimentNeutral   Sentiment = "neutral"
	SentimentConcerned Sentiment = "concerned"
)

// AIAnalysis is ephemeral; it is shown once and never persisted.
type AIAnalysis struct {
	Summary     string    `json:"summary"`
	Suggestions []string  `json:"suggestions"`
	Sentiment   Sentiment `json:"sentiment"`
}

func NewReportID() string {
	return randomHex(16)
}

func NewStaffID(now time.Time) string {
	return fmt.Sprintf("st-%s-%d", randomHex(5), now.UnixMilli())
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
