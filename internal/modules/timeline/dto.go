package timeline

import "recstudio/internal/repository"

// DayGroup collects one bucket's sessions sharing a studio-local day.
// Header is empty when the bucket spans a single day; the section title
// stands in for it then.
type DayGroup struct {
	DayKey   string                  `json:"day_key"`
	Header   string                  `json:"header,omitempty"`
	Sessions []repository.SessionRow `json:"sessions"`
}

// ScheduleView is the bucketed board: what is on right now, what is coming
// up, and what wrapped recently.
type ScheduleView struct {
	Active   []DayGroup `json:"active"`
	Upcoming []DayGroup `json:"upcoming"`
	Recent   []DayGroup `json:"recent"`
}
