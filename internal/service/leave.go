package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"leave-tracker/internal/calendar"
	"leave-tracker/internal/models"
	"leave-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoEmployee   = errors.New("no employee selected or entered")
	ErrInvalidRange = errors.New("end date is before start date")
)

// NeutralColor is rendered for an empty employee name. It is never persisted.
const NeutralColor = "rgba(200,200,200,0.25)"

// GenerateColor returns a soft pastel rgba color.
func GenerateColor() string {
	r := 120 + rand.Intn(111)
	g := 120 + rand.Intn(111)
	b := 120 + rand.Intn(111)
	return fmt.Sprintf("rgba(%d,%d,%d,0.35)", r, g, b)
}

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	Year      int
	Month     int
	Employees []string
	Weeks     []calendar.Week
	Groups    []calendar.DateGroup
	Colors    map[string]string
}

type LeaveService struct {
	leaveRepo repository.LeaveRepository
	colorRepo repository.EmployeeColorRepository
	logger    *logrus.Logger
}

func NewLeaveService(
	leaveRepo repository.LeaveRepository,
	colorRepo repository.EmployeeColorRepository,
) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		colorRepo: colorRepo,
		logger:    logrus.New(),
	}
}

// AddRange inserts one leave record per day of the inclusive range. A typed
// name takes precedence over the selected one; an unknown name gets a color
// assigned on the spot. HalfDay is only honored for single-day ranges and is
// recorded on that one day. Returns the number of records created.
//
// There is deliberately no duplicate check: re-submitting the same range
// creates duplicate records, matching the accepted concurrency model.
func (s *LeaveService) AddRange(selected, typed, note string, from, to time.Time, halfDay bool) (int, error) {
	name := strings.TrimSpace(typed)
	if name == "" {
		name = strings.TrimSpace(selected)
	}
	if name == "" {
		return 0, ErrNoEmployee
	}

	from = normalizeDate(from)
	to = normalizeDate(to)
	if to.Before(from) {
		return 0, ErrInvalidRange
	}

	if _, err := s.colorRepo.FindOrCreate(name, GenerateColor); err != nil {
		return 0, fmt.Errorf("failed to ensure employee color: %w", err)
	}

	halfFlag := halfDay && from.Equal(to)

	var records []models.Leave
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		records = append(records, models.Leave{
			Name:    name,
			Date:    d,
			Note:    note,
			HalfDay: halfFlag && d.Equal(from),
		})
	}
	// The range persists as a unit: a failure mid-range must not leave a
	// partial set of days behind.
	if err := s.leaveRepo.CreateRange(records); err != nil {
		return 0, fmt.Errorf("failed to create leave range: %w", err)
	}

	s.logger.Infof("Added %d leave record(s) for %s (%s - %s)",
		len(records), name, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return len(records), nil
}

// Dashboard assembles the month grid, the full date-grouped listing and the
// color map for the requested month.
func (s *LeaveService) Dashboard(year, month int) (*DashboardData, error) {
	all, err := s.leaveRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load leaves: %w", err)
	}

	monthLeaves, err := s.leaveRepo.GetByYearMonth(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month leaves: %w", err)
	}

	weeks, err := calendar.BuildMonthGrid(year, month, monthLeaves)
	if err != nil {
		return nil, err
	}

	names, err := s.colorRepo.GetAllNames()
	if err != nil {
		return nil, fmt.Errorf("failed to load employee names: %w", err)
	}

	colors := make(map[string]string, len(names))
	for _, name := range names {
		color, err := s.ColorFor(name)
		if err != nil {
			return nil, err
		}
		colors[name] = color
	}
	// Imported or legacy records may reference names without a color row yet;
	// assign lazily at render time like everywhere else.
	for _, lv := range all {
		if _, ok := colors[lv.Name]; !ok {
			color, err := s.ColorFor(lv.Name)
			if err != nil {
				return nil, err
			}
			colors[lv.Name] = color
		}
	}

	return &DashboardData{
		Year:      year,
		Month:     month,
		Employees: names,
		Weeks:     weeks,
		Groups:    calendar.GroupByDate(all),
		Colors:    colors,
	}, nil
}

// Delete removes one leave record. Unknown ids are a no-op.
func (s *LeaveService) Delete(id uint) error {
	if err := s.leaveRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Infof("Deleted leave record ID %d", id)
	return nil
}

// ColorFor returns the stable color for an employee name, creating and
// persisting one on first sight. The empty name maps to a neutral gray
// without touching the store.
func (s *LeaveService) ColorFor(name string) (string, error) {
	if name == "" {
		return NeutralColor, nil
	}
	emp, err := s.colorRepo.FindOrCreate(name, GenerateColor)
	if err != nil {
		return "", err
	}
	return emp.Color, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
