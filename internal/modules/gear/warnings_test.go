package gear

import (
	"testing"

	"recstudio/internal/repository"

	"github.com/stretchr/testify/assert"
)

func row(gearID int64, name string, qty int) repository.AssignmentRow {
	return repository.AssignmentRow{GearID: gearID, GearName: name, Quantity: qty}
}

func TestAvailabilityWarnings_Overcommit(t *testing.T) {
	// three requested units of a two-unit item in one set
	rows := []repository.AssignmentRow{
		row(3, "U87", 2),
		row(3, "U87", 2),
		row(3, "U87", 2),
	}

	warnings := AvailabilityWarnings(rows)

	assert.Len(t, warnings, 1)
	assert.Equal(t, int64(3), warnings[0].GearID)
	assert.Equal(t, 3, warnings[0].Requested)
	assert.Equal(t, 2, warnings[0].Available)
	assert.Contains(t, warnings[0].Message, "U87")
}

func TestAvailabilityWarnings_WithinStock(t *testing.T) {
	rows := []repository.AssignmentRow{
		row(3, "U87", 2),
		row(3, "U87", 2),
		row(1, "LA-2A", 1),
	}

	assert.Empty(t, AvailabilityWarnings(rows))
}

func TestAvailabilityWarnings_ZeroQuantityUntracked(t *testing.T) {
	rows := []repository.AssignmentRow{
		row(2, "SM57", 0),
		row(2, "SM57", 0),
		row(2, "SM57", 0),
	}

	assert.Empty(t, AvailabilityWarnings(rows))
}

func TestAvailabilityWarnings_NoCrossSetAggregation(t *testing.T) {
	// two sessions requesting the same two-unit item are each judged alone
	first := []repository.AssignmentRow{row(3, "U87", 2), row(3, "U87", 2)}
	second := []repository.AssignmentRow{row(3, "U87", 2)}

	assert.Empty(t, AvailabilityWarnings(first))
	assert.Empty(t, AvailabilityWarnings(second))
}

func TestAvailabilityWarnings_MixedSet(t *testing.T) {
	rows := []repository.AssignmentRow{
		row(1, "LA-2A", 1),
		row(2, "SM57", 0),
		row(2, "SM57", 0),
		row(3, "U87", 1),
		row(3, "U87", 1),
	}

	warnings := AvailabilityWarnings(rows)

	assert.Len(t, warnings, 1)
	assert.Equal(t, int64(3), warnings[0].GearID)
	assert.Equal(t, 2, warnings[0].Requested)
	assert.Equal(t, 1, warnings[0].Available)
}

func TestAvailabilityWarnings_EmptySet(t *testing.T) {
	assert.Empty(t, AvailabilityWarnings(nil))
}
