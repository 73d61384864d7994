package report

import (
	"testing"

	"nippo/internal/domain"
)

func sampleReports() []domain.Report {
	// Insertion order: newest first, like the stored collection.
	return []domain.Report{
		{ID: "r3", Date: "2026-08-31", StaffName: "Alice", WorkContent: "■Wix実装\nフォーム改修"},
		{ID: "r2", Date: "2026-08-30", StaffName: "Bob", WorkContent: "■SNS運用\nキャンペーン投稿"},
		{ID: "r1", Date: "2026-07-15", StaffName: "alice", WorkContent: "■デザイン\nロゴ案"},
	}
}

func ids(reports []domain.Report) []string {
	var out []string
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	reports := sampleReports()

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"r3", "r2", "r1"}},          // empty keeps everything
		{"WIX", []string{"r3"}},                   // case-insensitive content match
		{"2026-08", []string{"r3", "r2"}},         // literal date substring
		{"ALICE", []string{"r3", "r1"}},           // case-insensitive staff match
		{"存在しない", nil},
	}
	for _, tt := range tests {
		got := ids(Search(reports, tt.term))
		if len(got) != len(tt.want) {
			t.Fatalf("Search(%q) = %v, want %v", tt.term, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("Search(%q) = %v, want %v", tt.term, got, tt.want)
			}
		}
	}
}

func TestFilterByStaff(t *testing.T) {
	reports := sampleReports()

	if got := FilterByStaff(reports, StaffFilterAll); len(got) != 3 {
		t.Fatalf("'all' sentinel must pass everything, got %d", len(got))
	}
	got := FilterByStaff(reports, "Alice")
	if len(got) != 1 || got[0].ID != "r3" {
		t.Fatalf("staff filter is exact match, got %v", ids(got))
	}
	// Unlike search, the staff filter is case-sensitive.
	if got := FilterByStaff(reports, "ALICE"); len(got) != 0 {
		t.Fatalf("staff filter must not fold case, got %v", ids(got))
	}
}

func TestFilterByDateRangeInclusiveAndAscending(t *testing.T) {
	reports := sampleReports()

	got := FilterByDateRange(reports, "2026-07-15", "2026-08-30")
	if len(got) != 2 {
		t.Fatalf("expected both boundary dates included, got %v", ids(got))
	}
	if got[0].ID != "r1" || got[1].ID != "r2" {
		t.Fatalf("export filter must sort date-ascending, got %v", ids(got))
	}

	if got := FilterByDateRange(reports, "2026-09-01", "2026-09-30"); len(got) != 0 {
		t.Fatalf("out-of-range dates must be excluded, got %v", ids(got))
	}
}

func TestStaffNames(t *testing.T) {
	names := StaffNames(sampleReports())
	if len(names) != 3 {
		t.Fatalf("expected 3 distinct names, got %v", names)
	}
	// Sorted; capital letters sort before lowercase.
	if names[0] != "Alice" || names[1] != "Bob" || names[2] != "alice" {
		t.Fatalf("unexpected order: %v", names)
	}
}
