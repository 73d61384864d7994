package report

import (
	"fmt"
	"math"
	"regexp"

	"nippo/internal/domain"
)

// Tolerance absorbs float rounding from decimal-hour arithmetic.
const hoursTolerance = 0.01

var firstNumberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseShiftHours extracts the first number from a shift description like
// "8時間（9:00〜18:00、休憩1時間）". No number means 0.
func ParseShiftHours(workHours string) float64 {
	match := firstNumberRe.FindString(workHours)
	if match == "" {
		return 0
	}
	var h float64
	fmt.Sscanf(match, "%f", &h)
	return h
}

// FlexTotal computes worked hours from same-day HH:MM clock times. An end
// before the start wraps past midnight. Break minutes are subtracted and the
// result is floored at zero, then rounded to one decimal.
func FlexTotal(start, end string, breakHours float64) (float64, error) {
	startH, startM, err := parseClock(start)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	endH, endM, err := parseClock(end)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", end, err)
	}

	diffMin := (endH*60 + endM) - (startH*60 + startM)
	if diffMin < 0 {
		diffMin += 24 * 60
	}

	workMin := float64(diffMin) - breakHours*60
	if workMin < 0 {
		workMin = 0
	}
	return math.Round(workMin/60*10) / 10, nil
}

// TargetHours derives the value category hours must reconcile against.
func TargetHours(workType domain.WorkType, workHours string, flexTotal float64) float64 {
	if workType == domain.WorkTypeFlex {
		return flexTotal
	}
	return ParseShiftHours(workHours)
}

// CheckHours blocks submission when the category sum drifts from the target
// by more than the tolerance. The error names both values.
func CheckHours(categoryTotal, target float64) error {
	if math.Abs(categoryTotal-target) > hoursTolerance {
		return &domain.HoursMismatchError{CategoryTotal: categoryTotal, TargetHours: target}
	}
	return nil
}

func parseClock(s string) (int, int, error) {
	var hour, min int
	_, err := fmt.Sscanf(s, "%d:%d", &hour, &min)
	if err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("time out of range: %02d:%02d", hour, min)
	}
	return hour, min, nil
}
