package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendancepro/attendance-backend-go/internal/domain/employee"
	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	attendanceService "github.com/attendancepro/attendance-backend-go/internal/service/attendance"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const recentEventLimit = 10

type DashboardServiceImpl struct {
	attendance.EventRepository
	employee.EmployeeRepository
	company.CompanyRepository
	hardware.DeviceRepository
	now func() time.Time
}

func NewDashboardService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	deviceRepo hardware.DeviceRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
		DeviceRepository:   deviceRepo,
		now:                time.Now,
	}
}

// getAdminCompanyID extracts company_id from JWT claims and enforces the
// admin role.
func (s *DashboardServiceImpl) getAdminCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, _ := claims["role"].(string)
	if user.Role(role) != user.RoleAdmin {
		return "", company.ErrUnauthorized
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in claims")
	}
	return companyID, nil
}

// GetAdminDashboard returns combined dashboard data using parallel queries.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context, date string) (*dashboard.AdminDashboardResponse, error) {
	companyID, err := s.getAdminCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	loc, err := time.LoadLocation(comp.Settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	dateKey := date
	if dateKey == "" {
		dateKey = s.now().In(loc).Format("2006-01-02")
	}

	var (
		events    []attendance.Event
		employees []employee.Employee
		devices   []hardware.Device
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		events, err = s.EventRepository.ListByCompanyOn(gCtx, companyID, dateKey)
		if err != nil {
			return fmt.Errorf("failed to list company attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.ListByCompany(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		devices, err = s.DeviceRepository.ListByCompany(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list devices: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := dashboard.TodayStatsResponse{
		Date:           dateKey,
		TotalEmployees: len(employees),
	}

	// One classification per employee: the earliest check-in of the day
	// carries the status label computed at admission. Events arrive newest
	// first, so later entries in the walk overwrite earlier ones.
	statusByEmployee := make(map[string]attendance.DayStatus)
	for _, ev := range events {
		if ev.Type != attendance.EventCheckIn {
			continue
		}
		statusByEmployee[ev.EmployeeID] = ev.Status
	}

	stats.CheckedIn = len(statusByEmployee)
	for _, status := range statusByEmployee {
		switch status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusLate:
			stats.Late++
		}
	}
	if notIn := stats.TotalEmployees - stats.CheckedIn; notIn > 0 {
		stats.NotCheckedIn = notIn
	}

	return &dashboard.AdminDashboardResponse{
		Today:        stats,
		DeviceCount:  len(devices),
		RecentEvents: recentEvents(events),
	}, nil
}

// GetEmployeeDashboard returns the caller's month-to-date summary and
// latest events.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (*dashboard.EmployeeDashboardResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return nil, attendance.ErrUnauthorized
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, fmt.Errorf("company_id not found in claims")
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if comp.Status == company.StatusSuspended {
		return nil, company.ErrCompanySuspended
	}
	loc, err := time.LoadLocation(comp.Settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	nowLocal := s.now().In(loc)
	year, month := nowLocal.Year(), nowLocal.Month()
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc).UTC()
	to := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).UTC()

	events, err := s.EventRepository.ListByEmployeeBetween(ctx, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	checkIns := make([]attendance.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type == attendance.EventCheckIn {
			checkIns = append(checkIns, ev)
		}
	}

	records := attendanceService.DedupeByTimestamp(checkIns, loc)
	schedule := attendance.WorkSchedule{Start: comp.Settings.ScheduleStart, End: comp.Settings.ScheduleEnd}

	result, err := attendanceService.AggregateMonth(records, year, month, s.now(), schedule, comp.Settings.GraceMinutes, loc, nil)
	if err != nil {
		return nil, err
	}

	return &dashboard.EmployeeDashboardResponse{
		Summary: attendance.MonthlySummaryResponse{
			Month:       fmt.Sprintf("%04d-%02d", year, int(month)),
			Stats:       result.Stats,
			WorkingDays: result.WorkingDays,
			Rate:        attendanceService.Rate(result.Stats),
			Days:        result.Days,
		},
		RecentEvents: recentEvents(events),
	}, nil
}

// recentEvents maps the newest-first event slice into the feed payload,
// capped at recentEventLimit.
func recentEvents(events []attendance.Event) []attendance.EventResponse {
	recent := make([]attendance.EventResponse, 0, recentEventLimit)
	for _, ev := range events {
		if len(recent) == recentEventLimit {
			break
		}
		recent = append(recent, attendance.EventResponse{
			ID:         ev.ID,
			EmployeeID: ev.EmployeeID,
			Type:       string(ev.Type),
			Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
			Latitude:   ev.Latitude,
			Longitude:  ev.Longitude,
			Status:     string(ev.Status),
			Source:     ev.Source,
		})
	}
	return recent
}
