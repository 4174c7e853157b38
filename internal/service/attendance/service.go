package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/employee"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/geo"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/sse"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.EventRepository
	employee.EmployeeRepository
	company.CompanyRepository
	hub *sse.Hub
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	hub *sse.Hub,
) attendance.Service {
	return &AttendanceServiceImpl{
		db:                 db,
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
		hub:                hub,
		now:                time.Now,
	}
}

type caller struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

func callerFromContext(ctx context.Context) (caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	c := caller{}
	if v, ok := claims["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		c.EmployeeID = v
	}
	if v, ok := claims["company_id"].(string); ok {
		c.CompanyID = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = user.Role(v)
	}

	if c.CompanyID == "" {
		return caller{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	return c, nil
}

// activeCompany loads the caller's company and rejects suspended tenants.
func (a *AttendanceServiceImpl) activeCompany(ctx context.Context, companyID string) (company.Company, *time.Location, error) {
	comp, err := a.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, nil, company.ErrCompanyNotFound
		}
		return company.Company{}, nil, fmt.Errorf("failed to get company: %w", err)
	}
	if comp.Status == company.StatusSuspended {
		return company.Company{}, nil, company.ErrCompanySuspended
	}

	loc, err := time.LoadLocation(comp.Settings.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return comp, loc, nil
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return attendance.EventResponse{}, attendance.ErrLocationRequired
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if c.EmployeeID == "" {
		return attendance.EventResponse{}, attendance.ErrUnauthorized
	}

	comp, loc, err := a.activeCompany(ctx, c.CompanyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	fence := geo.Geofence{
		Center:       geo.Point{Latitude: comp.Settings.Latitude, Longitude: comp.Settings.Longitude},
		RadiusMeters: comp.Settings.RadiusMeters,
	}
	if !fence.Contains(geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}) {
		return attendance.EventResponse{}, attendance.ErrOutsideAllowedRadius
	}

	nowUTC := a.now().UTC()
	dateKey := DateKey(nowUTC, loc)

	hasCheckedIn, err := a.EventRepository.HasCheckedInOn(ctx, c.EmployeeID, dateKey, c.CompanyID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.EventResponse{}, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if hasCheckedIn {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
	}

	candidate := attendance.Event{
		EmployeeID: c.EmployeeID,
		CompanyID:  c.CompanyID,
		Type:       attendance.EventCheckIn,
		Timestamp:  nowUTC,
		LocalDate:  dateKey,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Source:     "device",
	}

	schedule := attendance.WorkSchedule{Start: comp.Settings.ScheduleStart, End: comp.Settings.ScheduleEnd}
	status, err := ClassifyDay([]attendance.Event{candidate}, schedule, comp.Settings.GraceMinutes, loc)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	candidate.Status = status

	created, err := a.EventRepository.Create(ctx, candidate)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	resp := toEventResponse(created)
	a.hub.Publish(c.CompanyID, sse.Event{
		CompanyID: c.CompanyID,
		Event:     "attendance.check_in",
		Data:      resp,
	})

	return resp, nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return attendance.EventResponse{}, attendance.ErrLocationRequired
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if c.EmployeeID == "" {
		return attendance.EventResponse{}, attendance.ErrUnauthorized
	}

	comp, loc, err := a.activeCompany(ctx, c.CompanyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	fence := geo.Geofence{
		Center:       geo.Point{Latitude: comp.Settings.Latitude, Longitude: comp.Settings.Longitude},
		RadiusMeters: comp.Settings.RadiusMeters,
	}
	if !fence.Contains(geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}) {
		return attendance.EventResponse{}, attendance.ErrOutsideAllowedRadius
	}

	nowUTC := a.now().UTC()
	dateKey := DateKey(nowUTC, loc)

	hasCheckedIn, err := a.EventRepository.HasCheckedInOn(ctx, c.EmployeeID, dateKey, c.CompanyID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.EventResponse{}, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if !hasCheckedIn {
		return attendance.EventResponse{}, attendance.ErrNotCheckedIn
	}

	created, err := a.EventRepository.Create(ctx, attendance.Event{
		EmployeeID: c.EmployeeID,
		CompanyID:  c.CompanyID,
		Type:       attendance.EventCheckOut,
		Timestamp:  nowUTC,
		LocalDate:  dateKey,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Source:     "device",
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	resp := toEventResponse(created)
	a.hub.Publish(c.CompanyID, sse.Event{
		CompanyID: c.CompanyID,
		Event:     "attendance.check_out",
		Data:      resp,
	})

	return resp, nil
}

// History implements attendance.Service.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.DailyRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	comp, loc, err := a.activeCompany(ctx, c.CompanyID)
	if err != nil {
		return nil, err
	}

	employeeID, err := a.resolveEmployee(ctx, c, filter.EmployeeID)
	if err != nil {
		return nil, err
	}

	_, _, from, to, err := monthWindow(filter.Month, a.now().In(loc), loc)
	if err != nil {
		return nil, err
	}

	events, err := a.EventRepository.ListByEmployeeBetween(ctx, employeeID, from, to, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	records := DedupeByTimestamp(checkIns(events), loc)
	responses := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.DailyRecordResponse{
			Date:  rec.DateKey,
			Event: toEventResponse(rec.Event),
		})
	}

	return responses, nil
}

// MonthlySummary implements attendance.Service.
func (a *AttendanceServiceImpl) MonthlySummary(ctx context.Context, filter attendance.HistoryFilter) (attendance.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	comp, loc, err := a.activeCompany(ctx, c.CompanyID)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	employeeID, err := a.resolveEmployee(ctx, c, filter.EmployeeID)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	year, month, from, to, err := monthWindow(filter.Month, a.now().In(loc), loc)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	events, err := a.EventRepository.ListByEmployeeBetween(ctx, employeeID, from, to, comp.ID)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	records := DedupeByTimestamp(checkIns(events), loc)
	schedule := attendance.WorkSchedule{Start: comp.Settings.ScheduleStart, End: comp.Settings.ScheduleEnd}

	result, err := AggregateMonth(records, year, month, a.now(), schedule, comp.Settings.GraceMinutes, loc, nil)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	return attendance.MonthlySummaryResponse{
		Month:       fmt.Sprintf("%04d-%02d", year, int(month)),
		Stats:       result.Stats,
		WorkingDays: result.WorkingDays,
		Rate:        Rate(result.Stats),
		Days:        result.Days,
	}, nil
}

// RecordManualEntry implements attendance.Service.
func (a *AttendanceServiceImpl) RecordManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if c.Role != user.RoleAdmin {
		return attendance.EventResponse{}, attendance.ErrUnauthorized
	}

	comp, loc, err := a.activeCompany(ctx, c.CompanyID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, comp.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.EventResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	timestamp, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, loc)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to parse manual entry time: %w", err)
	}
	timestampUTC := timestamp.UTC()

	candidate := attendance.Event{
		EmployeeID: req.EmployeeID,
		CompanyID:  comp.ID,
		Type:       attendance.EventType(req.Type),
		Timestamp:  timestampUTC,
		LocalDate:  req.Date,
		Source:     "manual",
	}

	if candidate.Type == attendance.EventCheckIn {
		hasCheckedIn, err := a.EventRepository.HasCheckedInOn(ctx, req.EmployeeID, req.Date, comp.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return attendance.EventResponse{}, fmt.Errorf("failed to check existing check-in: %w", err)
		}
		if hasCheckedIn {
			return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
		}

		schedule := attendance.WorkSchedule{Start: comp.Settings.ScheduleStart, End: comp.Settings.ScheduleEnd}
		status, err := ClassifyDay([]attendance.Event{candidate}, schedule, comp.Settings.GraceMinutes, loc)
		if err != nil {
			return attendance.EventResponse{}, err
		}
		candidate.Status = status
	}

	created, err := a.EventRepository.Create(ctx, candidate)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return toEventResponse(created), nil
}

// ListCompanyDay implements attendance.Service.
func (a *AttendanceServiceImpl) ListCompanyDay(ctx context.Context, dateKey string) ([]attendance.EventResponse, error) {
	if _, ok := validator.IsValidDate(dateKey); !ok {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if c.Role != user.RoleAdmin {
		return nil, attendance.ErrUnauthorized
	}

	events, err := a.EventRepository.ListByCompanyOn(ctx, c.CompanyID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list company attendance: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, toEventResponse(ev))
	}

	return responses, nil
}

// resolveEmployee picks the history target: admins may query any employee
// in their company, everyone else only sees their own log.
func (a *AttendanceServiceImpl) resolveEmployee(ctx context.Context, c caller, requested string) (string, error) {
	if requested == "" || requested == c.EmployeeID {
		if c.EmployeeID == "" {
			return "", attendance.ErrUnauthorized
		}
		return c.EmployeeID, nil
	}

	if c.Role != user.RoleAdmin {
		return "", attendance.ErrUnauthorized
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, requested, c.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get employee: %w", err)
	}

	return requested, nil
}

// checkIns filters the raw log to check-in events. A calendar day is
// represented by its check-in; check-outs never carry a day classification.
func checkIns(events []attendance.Event) []attendance.Event {
	filtered := make([]attendance.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type == attendance.EventCheckIn {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// monthWindow resolves a "YYYY-MM" filter (empty means the current month in
// the company zone) into its year/month pair and the UTC instant range
// [from, to) covering the whole local month.
func monthWindow(monthStr string, nowLocal time.Time, loc *time.Location) (int, time.Month, time.Time, time.Time, error) {
	year, month := nowLocal.Year(), nowLocal.Month()
	if monthStr != "" {
		parsed, err := time.ParseInLocation("2006-01", monthStr, loc)
		if err != nil {
			return 0, 0, time.Time{}, time.Time{}, fmt.Errorf("failed to parse month filter: %w", err)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, loc).UTC()
	to := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).UTC()
	return year, month, from, to, nil
}

func toEventResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Type:       string(ev.Type),
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
		Status:     string(ev.Status),
		Source:     ev.Source,
	}
}
