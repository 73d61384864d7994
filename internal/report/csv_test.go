package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"nippo/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	reports := []domain.Report{
		{
			Date:          "2026-08-30",
			SubmittedAt:   "2026/8/30 18:02:11",
			StaffName:     "Alice",
			WorkType:      domain.WorkTypeStandard,
			WorkHours:     "8時間（9:00〜18:00、休憩1時間）",
			CategoryHours: domain.CategoryHours{SNS: 3, Wix: 4.5, Other: 0.5},
			WorkContent:   "クライアントの\"至急\"対応",
			Learnings:     "学び",
		},
		{
			Date:        "2026-08-31",
			SubmittedAt: "2026/8/31 19:10:05",
			StaffName:   "Bob",
			WorkType:    domain.WorkTypeFlex,
			WorkHours:   "8.0h (Flex)",
			WorkContent: "実装",
		},
	}

	var b strings.Builder
	if err := WriteCSV(&b, reports); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "\uFEFF") {
		t.Fatal("CSV output must start with a BOM")
	}
	// Embedded quotes are doubled inside a quote-wrapped cell.
	if !strings.Contains(out, `"クライアントの""至急""対応"`) {
		t.Fatalf("embedded quotes not escaped: %s", out)
	}
	if !strings.Contains(out, `"フレックス"`) || !strings.Contains(out, `"通常勤務"`) {
		t.Fatalf("work type labels missing: %s", out)
	}

	// Round-trip through a standard CSV reader recovers the original text.
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF")))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-parsing export failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if len(records[0]) != 13 {
		t.Fatalf("expected 13 columns, got %d", len(records[0]))
	}
	if records[0][0] != "日付" || records[0][12] != "明日の予定" {
		t.Fatalf("unexpected header row: %v", records[0])
	}
	if records[1][9] != `クライアントの"至急"対応` {
		t.Fatalf("round-trip lost the quoted text: %q", records[1][9])
	}
	if records[1][6] != "4.5" || records[1][8] != "0.5" || records[2][5] != "0" {
		t.Fatalf("unexpected hour cells: %v / %v", records[1], records[2])
	}
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename("2026-08-01", "2026-08-31")
	if got != "daily_reports_2026-08-01_to_2026-08-31.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
