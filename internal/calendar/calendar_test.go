package calendar

import (
	"fmt"
	"testing"
	"time"

	"leave-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthGridShape(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for month := 1; month <= 12; month++ {
			t.Run(fmt.Sprintf("%d-%02d", year, month), func(t *testing.T) {
				weeks, err := BuildMonthGrid(year, month, nil)
				require.NoError(t, err)

				days := DaysInMonth(year, month)
				offset := WeekdayOffset(year, month)
				wantWeeks := (days + offset + 6) / 7
				assert.Len(t, weeks, wantWeeks)

				filled := 0
				next := 1
				for _, week := range weeks {
					assert.Len(t, week, 7)
					for _, cell := range week {
						if cell.Num != 0 {
							assert.Equal(t, next, cell.Num, "days must appear in order")
							next++
							filled++
						}
					}
				}
				assert.Equal(t, days, filled, "non-empty cells must equal days in month")
			})
		}
	}
}

func TestBuildMonthGridMondayFirst(t *testing.T) {
	// 2024-04-01 is a Monday: no leading padding.
	weeks, err := BuildMonthGrid(2024, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, weeks[0][0].Num)

	// 2024-03-01 is a Friday: four leading padding cells.
	weeks, err = BuildMonthGrid(2024, 3, nil)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Zero(t, weeks[0][i].Num)
	}
	assert.Equal(t, 1, weeks[0][4].Num)
}

func TestBuildMonthGridFebruary(t *testing.T) {
	maxDay := func(weeks []Week) int {
		max := 0
		for _, week := range weeks {
			for _, cell := range week {
				if cell.Num > max {
					max = cell.Num
				}
			}
		}
		return max
	}

	leap, err := BuildMonthGrid(2024, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 29, maxDay(leap))

	nonLeap, err := BuildMonthGrid(2023, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 28, maxDay(nonLeap))
}

func TestBuildMonthGridLabels(t *testing.T) {
	leaves := []models.Leave{
		{Name: "Alice", Date: day(2024, 3, 10), HalfDay: true},
		{Name: "Bob", Date: day(2024, 3, 10)},
		{Name: "Carol", Date: day(2024, 3, 12)},
	}

	weeks, err := BuildMonthGrid(2024, 3, leaves)
	require.NoError(t, err)

	var day10, day12 *Day
	for i := range weeks {
		for j := range weeks[i] {
			switch weeks[i][j].Num {
			case 10:
				day10 = &weeks[i][j]
			case 12:
				day12 = &weeks[i][j]
			}
		}
	}
	require.NotNil(t, day10)
	require.NotNil(t, day12)

	// Insertion order, half-day marker only on the flagged record.
	assert.Equal(t, []string{"Alice (Half)", "Bob"}, day10.Labels)
	assert.Equal(t, []string{"Carol"}, day12.Labels)
}

func TestBuildMonthGridRejectsInvalidInput(t *testing.T) {
	for _, tc := range []struct{ year, month int }{
		{2024, 0},
		{2024, 13},
		{2024, -1},
		{0, 6},
		{10000, 6},
	} {
		_, err := BuildMonthGrid(tc.year, tc.month, nil)
		assert.Error(t, err, "year=%d month=%d", tc.year, tc.month)
	}
}

func TestGroupByDateOrdering(t *testing.T) {
	leaves := []models.Leave{
		{ID: 1, Name: "Alice", Date: day(2024, 1, 5)},
		{ID: 2, Name: "Bob", Date: day(2024, 1, 2)},
		{ID: 3, Name: "Carol", Date: day(2024, 1, 9)},
		{ID: 4, Name: "Dave", Date: day(2024, 1, 5)},
	}

	groups := GroupByDate(leaves)
	require.Len(t, groups, 3)
	assert.Equal(t, "2024-01-02", groups[0].Date)
	assert.Equal(t, "2024-01-05", groups[1].Date)
	assert.Equal(t, "2024-01-09", groups[2].Date)

	// Records sharing a date keep their relative input order.
	require.Len(t, groups[1].Leaves, 2)
	assert.Equal(t, "Alice", groups[1].Leaves[0].Name)
	assert.Equal(t, "Dave", groups[1].Leaves[1].Name)
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
}
