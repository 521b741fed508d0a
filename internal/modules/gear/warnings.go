package gear

import (
	"fmt"

	"recstudio/internal/repository"
)

// Warning flags a session requesting more units of a gear item than the
// studio has on hand. Advisory only: assignments save regardless.
type Warning struct {
	GearID    int64  `json:"gear_id"`
	GearName  string `json:"gear_name,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Message   string `json:"message"`
}

// AvailabilityWarnings tallies one requested unit per assignment row and
// compares the per-gear total against the on-hand quantity carried on the
// joined rows. Gear with zero recorded quantity is untracked stock and never
// warns. The function only sees the rows it is given, so evaluation stays
// scoped to a single session's assignment set.
func AvailabilityWarnings(assignments []repository.AssignmentRow) []Warning {
	type tally struct {
		name      string
		requested int
		available int
	}
	counts := make(map[int64]*tally)
	order := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		t, ok := counts[a.GearID]
		if !ok {
			t = &tally{name: a.GearName, available: a.Quantity}
			counts[a.GearID] = t
			order = append(order, a.GearID)
		}
		t.requested++
	}

	warnings := make([]Warning, 0)
	for _, id := range order {
		t := counts[id]
		if t.available == 0 || t.requested <= t.available {
			continue
		}
		warnings = append(warnings, Warning{
			GearID:    id,
			GearName:  t.name,
			Requested: t.requested,
			Available: t.available,
			Message:   fmt.Sprintf("%s: %d requested, %d on hand", t.name, t.requested, t.available),
		})
	}
	return warnings
}
