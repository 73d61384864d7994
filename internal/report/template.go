package report

import (
	"fmt"
	"strings"
	"time"

	"nippo/internal/domain"
)

// Fallback inserted for empty free-text fields.
const fallbackNone = "特になし"

var weekdayNamesJa = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// Placeholders supported by editable report templates. Anything else in the
// template is left verbatim.
const (
	tokenDate             = "{{date}}"
	tokenWorkHours        = "{{workHours}}"
	tokenWorkContent      = "{{workContent}}"
	tokenLearnings        = "{{learnings}}"
	tokenIssues           = "{{issues}}"
	tokenTomorrowSchedule = "{{tomorrowSchedule}}"
)

// TemplateFields carries the resolved values for one rendering pass.
type TemplateFields struct {
	Date             string
	WorkHours        string
	WorkContent      string
	Learnings        string
	Issues           string
	TomorrowSchedule string
}

// RenderTemplate substitutes every occurrence of each recognized
// placeholder. Empty free-text values render as 特になし; date and hours are
// always populated by the caller.
func RenderTemplate(tmpl string, fields TemplateFields) string {
	out := tmpl
	out = strings.ReplaceAll(out, tokenDate, fields.Date)
	out = strings.ReplaceAll(out, tokenWorkHours, fields.WorkHours)
	out = strings.ReplaceAll(out, tokenWorkContent, orFallback(fields.WorkContent))
	out = strings.ReplaceAll(out, tokenLearnings, orFallback(fields.Learnings))
	out = strings.ReplaceAll(out, tokenIssues, orFallback(fields.Issues))
	out = strings.ReplaceAll(out, tokenTomorrowSchedule, orFallback(fields.TomorrowSchedule))
	return out
}

func orFallback(s string) string {
	if s == "" {
		return fallbackNone
	}
	return s
}

// FormatDateJa renders a YYYY-MM-DD date as 2026年8月31日（月）. An
// unparseable date is returned unchanged.
func FormatDateJa(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d年%d月%d日（%s）",
		t.Year(), int(t.Month()), t.Day(), weekdayNamesJa[int(t.Weekday())])
}

// FlexHoursText is the long-form hours description embedded in flex reports.
func FlexHoursText(total float64, start, end, core string, breakHours float64) string {
	return fmt.Sprintf("%.1f時間（フレックス制：%s〜%s、コアタイム：%s、休憩%s時間）",
		total, start, end, core, domain.FormatHours(breakHours))
}

// FlexDisplayHours is the short hours string stored on flex reports.
func FlexDisplayHours(total float64) string {
	return fmt.Sprintf("%.1fh (Flex)", total)
}

// BuildWorkContent assembles the category section: one ■ header per
// category with text, an [Nh] tag when hours were logged, blank line
// between categories. Categories without text are skipped entirely.
func BuildWorkContent(hours domain.CategoryHours, texts domain.CategoryTexts) string {
	var parts []string
	for _, key := range domain.CategoryKeys {
		text := strings.TrimSpace(texts.Get(key))
		if text == "" {
			continue
		}
		header := "■" + domain.CategoryLabels[key]
		if h := hours.Get(key); h > 0 {
			header += fmt.Sprintf(" [%sh]", domain.FormatHours(h))
		}
		parts = append(parts, header+"\n"+text)
	}
	return strings.Join(parts, "\n\n")
}
