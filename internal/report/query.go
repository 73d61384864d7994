package report

import (
	"sort"
	"strings"

	"nippo/internal/domain"
)

// StaffFilterAll passes every report through the staff filter.
const StaffFilterAll = "all"

// Search keeps reports whose work content or staff name contains the term
// (case-insensitive), or whose date string contains it literally. An empty
// term keeps everything. Input order is preserved.
func Search(reports []domain.Report, term string) []domain.Report {
	if term == "" {
		return reports
	}
	lower := strings.ToLower(term)
	var out []domain.Report
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.WorkContent), lower) ||
			strings.Contains(r.Date, term) ||
			strings.Contains(strings.ToLower(r.StaffName), lower) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStaff keeps reports for an exact staff name. The "all" sentinel
// (or an empty name) passes everything.
func FilterByStaff(reports []domain.Report, name string) []domain.Report {
	if name == "" || name == StaffFilterAll {
		return reports
	}
	var out []domain.Report
	for _, r := range reports {
		if r.StaffName == name {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDateRange keeps reports with start <= date <= end and sorts them
// date-ascending for export. The lexicographic comparison is correct because
// dates are stored as YYYY-MM-DD.
func FilterByDateRange(reports []domain.Report, start, end string) []domain.Report {
	var out []domain.Report
	for _, r := range reports {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// StaffNames returns the distinct staff names appearing in reports, sorted.
func StaffNames(reports []domain.Report) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range reports {
		if !seen[r.StaffName] {
			seen[r.StaffName] = true
			names = append(names, r.StaffName)
		}
	}
	sort.Strings(names)
	return names
}
