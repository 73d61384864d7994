package report

import (
	"strconv"
	"strings"
	"time"

	"nippo/internal/domain"
)

// FormState is the full input of one report submission. The yaml tags are
// the CLI file format; on edit, a partial file overlays the stored values.
type FormState struct {
	StaffName        string               `yaml:"staff_name"`
	Date             string               `yaml:"date"`
	WorkType         domain.WorkType      `yaml:"work_type"`
	WorkHours        string               `yaml:"work_hours"`
	FlexStart        string               `yaml:"flex_start"`
	FlexEnd          string               `yaml:"flex_end"`
	FlexCore         string               `yaml:"flex_core"`
	FlexBreak        float64              `yaml:"flex_break"`
	FlexTotal        float64              `yaml:"flex_total"`
	CategoryHours    domain.CategoryHours `yaml:"category_hours"`
	CategoryTexts    domain.CategoryTexts `yaml:"category_texts"`
	Learnings        string               `yaml:"learnings"`
	Issues           string               `yaml:"issues"`
	TomorrowSchedule string               `yaml:"tomorrow_schedule"`
}

type Store interface {
	LoadReports() []domain.Report
	SaveReports([]domain.Report) error
	LoadSettings() domain.Settings
}

// Controller assembles, validates and persists reports.
type Controller struct {
	store Store
	now   func() time.Time
}

func NewController(store Store) *Controller {
	return &Controller{store: store, now: time.Now}
}

// Submit validates the form, renders the report text and persists the whole
// report list. A nil editing argument inserts a new report (prepended);
// otherwise the stored report is overwritten in place, keeping its identity
// and original timestamps.
func (c *Controller) Submit(form FormState, editing *domain.Report) (domain.Report, error) {
	if strings.TrimSpace(form.StaffName) == "" {
		return domain.Report{}, &domain.ValidationError{Field: "staffName", Message: "スタッフを選択してください。"}
	}

	settings := c.store.LoadSettings()

	if form.WorkType == "" {
		form.WorkType = domain.WorkTypeStandard
	}
	if form.Date == "" {
		form.Date = c.now().Format("2006-01-02")
	}
	if form.WorkType == domain.WorkTypeStandard && form.WorkHours == "" {
		form.WorkHours = settings.DefaultWorkHours
	}

	flexTotal := form.FlexTotal
	if form.WorkType == domain.WorkTypeFlex && form.FlexStart != "" && form.FlexEnd != "" {
		total, err := FlexTotal(form.FlexStart, form.FlexEnd, form.FlexBreak)
		if err != nil {
			return domain.Report{}, &domain.ValidationError{Field: "flex", Message: err.Error()}
		}
		flexTotal = total
	}

	target := TargetHours(form.WorkType, form.WorkHours, flexTotal)
	if err := CheckHours(form.CategoryHours.Total(), target); err != nil {
		return domain.Report{}, err
	}

	hoursText := form.WorkHours
	displayHours := form.WorkHours
	if form.WorkType == domain.WorkTypeFlex {
		hoursText = FlexHoursText(flexTotal, form.FlexStart, form.FlexEnd, form.FlexCore, form.FlexBreak)
		displayHours = FlexDisplayHours(flexTotal)
	}

	workContent := BuildWorkContent(form.CategoryHours, form.CategoryTexts)
	rawText := RenderTemplate(settings.ReportTemplate, TemplateFields{
		Date:             FormatDateJa(form.Date),
		WorkHours:        hoursText,
		WorkContent:      workContent,
		Learnings:        form.Learnings,
		Issues:           form.Issues,
		TomorrowSchedule: form.TomorrowSchedule,
	})

	now := c.now()
	rep := domain.Report{
		ID:               domain.NewReportID(),
		CreatedAt:        now.UTC().Format(time.RFC3339),
		SubmittedAt:      now.Format("2006/1/2 15:04:05"),
		StaffName:        form.StaffName,
		Date:             form.Date,
		WorkType:         form.WorkType,
		WorkHours:        displayHours,
		CategoryHours:    form.CategoryHours,
		CategoryTexts:    form.CategoryTexts,
		WorkContent:      workContent,
		Learnings:        form.Learnings,
		Issues:           form.Issues,
		TomorrowSchedule: form.TomorrowSchedule,
		RawText:          rawText,
	}

	reports := c.store.LoadReports()
	if editing != nil {
		rep.ID = editing.ID
		rep.CreatedAt = editing.CreatedAt
		rep.SubmittedAt = editing.SubmittedAt
		replaced := false
		for i := range reports {
			if reports[i].ID == rep.ID {
				reports[i] = rep
				replaced = true
				break
			}
		}
		if !replaced {
			return rep, &domain.ValidationError{Field: "id", Message: "report not found: " + rep.ID}
		}
	} else {
		reports = append([]domain.Report{rep}, reports...)
	}

	if err := c.store.SaveReports(reports); err != nil {
		return rep, err
	}
	return rep, nil
}

// EditForm pre-populates a form from a stored report. For flex reports the
// total is reverse-derived from the stored hours string; the clock fields
// get the usual starting values so a partial edit recomputes sensibly.
func (c *Controller) EditForm(r domain.Report) FormState {
	form := FormState{
		StaffName:        r.StaffName,
		Date:             r.Date,
		WorkType:         r.WorkType,
		WorkHours:        r.WorkHours,
		FlexStart:        "10:00",
		FlexEnd:          "19:00",
		FlexCore:         "11:00〜15:00",
		FlexBreak:        1.0,
		CategoryHours:    r.CategoryHours,
		CategoryTexts:    r.CategoryTexts,
		Learnings:        r.Learnings,
		Issues:           r.Issues,
		TomorrowSchedule: r.TomorrowSchedule,
	}
	if r.WorkType == domain.WorkTypeFlex {
		form.FlexTotal = flexTotalFromWorkHours(r.WorkHours)
		form.WorkHours = ""
	}
	return form
}

// flexTotalFromWorkHours parses the leading number of "{total}h (Flex)".
func flexTotalFromWorkHours(workHours string) float64 {
	head, _, found := strings.Cut(workHours, "h")
	if !found {
		return 0
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil {
		return 0
	}
	return total
}

// FindByID looks a report up in the stored list.
func (c *Controller) FindByID(id string) (domain.Report, bool) {
	for _, r := range c.store.LoadReports() {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Report{}, false
}
