// Package calendar builds the Monday-first month grid and the date-grouped
// leave listing shown on the dashboard.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"leave-tracker/internal/models"
)

// HalfDayMarker is appended to a day label when the record is a half day.
const HalfDayMarker = " (Half)"

// Day is one cell of the month grid. Num is 0 for padding cells before the
// 1st and after the last day of the month.
type Day struct {
	Num    int
	Labels []string
}

// Week is one grid row, always exactly seven cells, Monday first.
type Week [7]Day

// DateGroup holds all leave records sharing one calendar date.
type DateGroup struct {
	Date   string
	Leaves []models.Leave
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOffset returns the Monday-based weekday index (Monday=0 .. Sunday=6)
// of the first day of the month.
func WeekdayOffset(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// BuildMonthGrid lays the given month out as weeks of seven day cells and
// attaches a display label for every leave record falling on each day.
// The caller is responsible for passing only records of the requested month.
// Labels keep the input record order. Out-of-range year or month values are
// rejected.
func BuildMonthGrid(year, month int, leaves []models.Leave) ([]Week, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("invalid year: %d", year)
	}

	labels := make(map[int][]string)
	for _, lv := range leaves {
		day := lv.Date.Day()
		label := lv.Name
		if lv.HalfDay {
			label += HalfDayMarker
		}
		labels[day] = append(labels[day], label)
	}

	days := DaysInMonth(year, month)
	offset := WeekdayOffset(year, month)

	weeks := make([]Week, (offset+days+6)/7)
	for d := 1; d <= days; d++ {
		cell := offset + d - 1
		weeks[cell/7][cell%7] = Day{Num: d, Labels: labels[d]}
	}
	return weeks, nil
}

// GroupByDate groups leave records by their ISO date, ordered by ascending
// date. Records within one date keep their relative input order.
func GroupByDate(leaves []models.Leave) []DateGroup {
	sorted := make([]models.Leave, len(leaves))
	copy(sorted, leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var groups []DateGroup
	index := make(map[string]int)
	for _, lv := range sorted {
		key := lv.DateISO()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Leaves = append(groups[i].Leaves, lv)
	}
	return groups
}
