package model

import "time"

type DueStatus string

const (
	DueOverdue DueStatus = "overdue"
	DueToday   DueStatus = "today"
	DueSoon    DueStatus = "soon"
	DueNormal  DueStatus = "normal"
)

const dueDateLayout = "Jan 2, 2006"

// DueInfo is the display classification of a due date. It is derived on
// read and never stored.
type DueInfo struct {
	Status DueStatus `json:"status"`
	Label  string    `json:"label"`
}

// ClassifyDue compares calendar days in now's location, so a task only turns
// overdue once its due day has fully passed. Completed tasks are never
// overdue. It returns nil when there is no due date.
func ClassifyDue(due *time.Time, completed bool, now time.Time) *DueInfo {
	if due == nil {
		return nil
	}

	local := due.In(now.Location())
	today := startOfDay(now)
	day := startOfDay(local)

	switch {
	case day.Equal(today):
		return &DueInfo{Status: DueToday, Label: "Due Today"}
	case day.Equal(today.AddDate(0, 0, 1)):
		return &DueInfo{Status: DueSoon, Label: "Due Tomorrow"}
	case local.Before(today) && !completed:
		return &DueInfo{Status: DueOverdue, Label: "Overdue: " + local.Format(dueDateLayout)}
	default:
		return &DueInfo{Status: DueNormal, Label: local.Format(dueDateLayout)}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
