package report

import (
	"fmt"
	"io"
	"strings"

	"nippo/internal/domain"
)

// Fixed export column set; spreadsheet tooling on the receiving side keys
// off these exact Japanese labels.
var csvHeaders = []string{
	"日付", "提出日時", "スタッフ名", "勤務形態", "稼働時間",
	"SNS時間(h)", "Wix時間(h)", "デザイン時間(h)", "その他時間(h)",
	"業務内容", "学んだこと", "困っていること", "明日の予定",
}

// csvBOM keeps Excel reading the file as UTF-8.
const csvBOM = "\uFEFF"

// WriteCSV serializes reports in the given order. Every data cell is
// quote-wrapped with embedded quotes doubled.
func WriteCSV(w io.Writer, reports []domain.Report) error {
	var b strings.Builder
	b.WriteString(csvBOM)
	b.WriteString(strings.Join(csvHeaders, ","))

	for _, r := range reports {
		workTypeLabel := "通常勤務"
		if r.WorkType == domain.WorkTypeFlex {
			workTypeLabel = "フレックス"
		}
		cells := []string{
			r.Date,
			r.SubmittedAt,
			r.StaffName,
			workTypeLabel,
			r.WorkHours,
			domain.FormatHours(r.CategoryHours.SNS),
			domain.FormatHours(r.CategoryHours.Wix),
			domain.FormatHours(r.CategoryHours.Design),
			domain.FormatHours(r.CategoryHours.Other),
			r.WorkContent,
			r.Learnings,
			r.Issues,
			r.TomorrowSchedule,
		}
		b.WriteString("\n")
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"` + strings.ReplaceAll(cell, `"`, `""`) + `"`)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ExportFilename embeds the selected date range.
func ExportFilename(start, end string) string {
	return fmt.Sprintf("daily_reports_%s_to_%s.csv", start, end)
}
