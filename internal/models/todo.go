package models

import (
	"encoding/json"
	"strings"

	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// Todo is a task, either recurring or due once.
//
// Recurring todos have a billing period set, one-off todos a due date.
type Todo struct {
	DefaultModel
	Title           string
	Note            string
	recurrence.Rule `gorm:"embedded"`
	DueDate         *types.Date
	Archived        bool
}

func (t *Todo) BeforeSave(_ *gorm.DB) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

func (t *Todo) AfterSave(_ *gorm.DB) error {
	return t.validate()
}

func (t Todo) validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTodoTitleRequired
	}

	recurring := t.IsRecurring()
	due := t.DueDate != nil && !t.DueDate.IsZero()

	if recurring && due {
		return ErrTodoScheduleAmbiguous
	}

	if !recurring && !due {
		return ErrTodoScheduleRequired
	}

	if recurring {
		return t.Rule.Validate()
	}

	return nil
}

// IsRecurring reports whether the todo has a recurrence.
func (t Todo) IsRecurring() bool {
	return t.Period != ""
}

// DatesIn returns the dates the todo is due in the month.
func (t Todo) DatesIn(month types.Month) []types.Date {
	if t.IsRecurring() {
		return t.Occurrences(month)
	}

	if t.DueDate != nil && month.Contains(t.DueDate.Time()) {
		return []types.Date{*t.DueDate}
	}

	return nil
}

// NextDueDate returns the next date the todo is due on or after the date.
// One-off todos return their due date even when it has passed.
func (t Todo) NextDueDate(from types.Date) *types.Date {
	if t.Archived {
		return nil
	}

	if !t.IsRecurring() {
		return t.DueDate
	}

	next, ok := t.Next(from)
	if !ok {
		return nil
	}
	return &next
}

func (Todo) Export() (json.RawMessage, error) {
	return exportAll[Todo]()
}

func (Todo) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[Todo](tx, data)
}
