package importer

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"ecodev/models"
)

// Date layouts accepted from spreadsheet cells. Excel renders date cells in
// its short display form, hand-typed cells are usually ISO.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	time.RFC3339,
}

// ParseDate tries the accepted layouts in order.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBudget converts a raw cell into a non-negative decimal.
func ParseBudget(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, errors.New("invalid budget")
	}
	return d, nil
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// dateField parses the named cell. An absent cell defaults to today's date
// (midnight UTC, so the stored date is stable across server timezones); a
// present but unparseable cell fails.
func dateField(r Row, key string) (time.Time, error) {
	raw := r.Get(key)
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		return time.Time{}, errors.New("invalid " + key)
	}
	return t, nil
}

// CoerceProgram validates a row already classified as KindProgram and shapes
// it into an insertable record. The returned error carries the row-level
// failure reason; it never panics past the caller.
func CoerceProgram(r Row) (*models.Program, error) {
	name := r.Get("name")
	if name == "" {
		return nil, errors.New("name is required")
	}
	category := r.Get("category")
	if !oneOf(category, models.ProgramCategories) {
		return nil, errors.New("invalid category")
	}
	status := r.Get("status")
	if status == "" {
		status = "active"
	}
	if !oneOf(status, models.ProgramStatuses) {
		return nil, errors.New("invalid status")
	}
	budget, err := ParseBudget(r.Get("budget"))
	if err != nil {
		return nil, err
	}
	start, err := dateField(r, "startDate")
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if raw := r.Get("endDate"); raw != "" {
		t, ok := ParseDate(raw)
		if !ok {
			return nil, errors.New("invalid endDate")
		}
		if t.Before(start) {
			return nil, errors.New("endDate precedes startDate")
		}
		end = &t
	}
	return &models.Program{
		Name:        name,
		Description: r.Get("description"),
		Category:    category,
		Status:      status,
		Budget:      budget,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// CoerceProject mirrors CoerceProgram for rows classified as KindProject.
// The program reference is only syntax-checked here; it resolves (or not)
// at persist time.
func CoerceProject(r Row) (*models.Project, error) {
	name := r.Get("name")
	if name == "" {
		return nil, errors.New("name is required")
	}
	programID, err := strconv.ParseUint(r.Get("programId"), 10, 32)
	if err != nil || programID == 0 {
		return nil, errors.New("invalid programId")
	}
	status := r.Get("status")
	if status == "" {
		status = "not-started"
	}
	if !oneOf(status, models.ProjectStatuses) {
		return nil, errors.New("invalid status")
	}
	priority := r.Get("priority")
	if priority == "" {
		priority = "medium"
	}
	if !oneOf(priority, models.ProjectPriorities) {
		return nil, errors.New("invalid priority")
	}
	budget, err := ParseBudget(r.Get("budget"))
	if err != nil {
		return nil, err
	}
	progress := 0
	if raw := r.Get("progress"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 || p > 100 {
			return nil, errors.New("invalid progress")
		}
		progress = p
	}
	start, err := dateField(r, "startDate")
	if err != nil {
		return nil, err
	}
	rawDeadline := r.Get("deadline")
	if rawDeadline == "" {
		return nil, errors.New("invalid deadline")
	}
	deadline, ok := ParseDate(rawDeadline)
	if !ok {
		return nil, errors.New("invalid deadline")
	}
	if deadline.Before(start) {
		return nil, errors.New("deadline precedes startDate")
	}
	return &models.Project{
		Name:        name,
		Description: r.Get("description"),
		ProgramID:   uint(programID),
		Status:      status,
		Priority:    priority,
		Budget:      budget,
		Progress:    progress,
		StartDate:   start,
		Deadline:    deadline,
	}, nil
}
