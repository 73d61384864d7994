package domain

import (
	"fmt"
	"strconv"
)

// ValidationError blocks a submission until the user corrects the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// HoursMismatchError carries both totals so callers can show them side by side.
type HoursMismatchError struct {
	CategoryTotal float64
	TargetHours   float64
}

func (e *HoursMismatchError) Error() string {
	return fmt.Sprintf(
		"稼働時間の不整合: カテゴリ合計 (%sh) が今日の総稼働時間 (%sh) と一致しません。内容を確認して再入力してください。",
		FormatHours(e.CategoryTotal), FormatHours(e.TargetHours),
	)
}

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("staff name already in use: %s", e.Name)
}

// FormatHours renders an hour count without a trailing zero fraction,
// matching how totals appear in report text ("2.5", "8").
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
