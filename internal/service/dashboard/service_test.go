package dashboard

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/employee"
	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "comp-1"

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Create(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Event, error) {
	for _, ev := range f.events {
		if ev.ID == id && ev.CompanyID == companyID {
			return ev, nil
		}
	}
	return attendance.Event{}, pgx.ErrNoRows
}

func (f *fakeEventRepo) ListByEmployeeBetween(_ context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID != employeeID || ev.CompanyID != companyID {
			continue
		}
		if ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeEventRepo) ListByCompanyOn(_ context.Context, companyID string, dateKey string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID == companyID && ev.LocalDate == dateKey {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeEventRepo) HasCheckedInOn(_ context.Context, employeeID string, dateKey string, companyID string) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) seed(employeeID string, typ attendance.EventType, ts time.Time, status attendance.DayStatus) {
	f.events = append(f.events, attendance.Event{
		ID:         fmt.Sprintf("evt-%d", len(f.events)+1),
		EmployeeID: employeeID,
		CompanyID:  testCompanyID,
		Type:       typ,
		Timestamp:  ts,
		LocalDate:  ts.UTC().Format("2006-01-02"),
		Status:     status,
		Source:     "device",
	})
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string, companyID string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) ListByCompany(_ context.Context, companyID string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) SoftDelete(_ context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeEmployeeRepo) ExistsByCodeOrEmail(_ context.Context, code string, email string, companyID string) (bool, error) {
	return false, nil
}

type fakeCompanyRepo struct {
	company company.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, newCompany company.Company) (company.Company, error) {
	return newCompany, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	if id != f.company.ID {
		return company.Company{}, pgx.ErrNoRows
	}
	return f.company, nil
}

func (f *fakeCompanyRepo) List(_ context.Context) ([]company.Company, error) {
	return []company.Company{f.company}, nil
}

func (f *fakeCompanyRepo) Rename(_ context.Context, id string, name string) error { return nil }

func (f *fakeCompanyRepo) SetStatus(_ context.Context, id string, status company.Status) error {
	return nil
}

func (f *fakeCompanyRepo) UpdateSettings(_ context.Context, id string, settings company.Settings) error {
	return nil
}

func (f *fakeCompanyRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	return false, nil
}

type fakeDeviceRepo struct {
	devices []hardware.Device
}

func (f *fakeDeviceRepo) Create(_ context.Context, device hardware.Device) (hardware.Device, error) {
	f.devices = append(f.devices, device)
	return device, nil
}

func (f *fakeDeviceRepo) GetByID(_ context.Context, id string) (hardware.Device, error) {
	for _, d := range f.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return hardware.Device{}, pgx.ErrNoRows
}

func (f *fakeDeviceRepo) List(_ context.Context) ([]hardware.Device, error) {
	return f.devices, nil
}

func (f *fakeDeviceRepo) ListByCompany(_ context.Context, companyID string) ([]hardware.Device, error) {
	var out []hardware.Device
	for _, d := range f.devices {
		if d.CompanyID != nil && *d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeviceRepo) Update(_ context.Context, device hardware.Device) error { return nil }

func (f *fakeDeviceRepo) ExistsByUID(_ context.Context, uid string) (bool, error) {
	return false, nil
}

func (f *fakeDeviceRepo) CreateCommand(_ context.Context, cmd hardware.Command) (hardware.Command, error) {
	return cmd, nil
}

func companyDevices(n int) *fakeDeviceRepo {
	repo := &fakeDeviceRepo{}
	companyID := testCompanyID
	for i := 0; i < n; i++ {
		repo.devices = append(repo.devices, hardware.Device{
			ID:        fmt.Sprintf("dev-%d", i+1),
			CompanyID: &companyID,
			DeviceUID: fmt.Sprintf("UID-%03d", i+1),
		})
	}
	return repo
}

func staff(ids ...string) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{}
	for i, id := range ids {
		repo.employees = append(repo.employees, employee.Employee{
			ID:           id,
			CompanyID:    testCompanyID,
			EmployeeCode: fmt.Sprintf("EMP%02d", i+1),
		})
	}
	return repo
}

func claimsContext(t *testing.T, role string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("company_id", testCompanyID))
	require.NoError(t, tok.Set("role", role))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func employeeContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("employee_id", employeeID))
	require.NoError(t, tok.Set("company_id", testCompanyID))
	require.NoError(t, tok.Set("role", "employee"))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func testCompany() company.Company {
	return company.Company{
		ID:     testCompanyID,
		Status: company.StatusActive,
		Settings: company.Settings{
			ScheduleStart: "09:00",
			ScheduleEnd:   "17:00",
			GraceMinutes:  15,
			Timezone:      "UTC",
		},
	}
}

func newTestService(eventRepo *fakeEventRepo, employeeRepo *fakeEmployeeRepo, deviceRepo *fakeDeviceRepo, now time.Time) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  &fakeCompanyRepo{company: testCompany()},
		DeviceRepository:   deviceRepo,
		now:                func() time.Time { return now },
	}
}

func TestDashboardService_GetAdminDashboard_TodayStats(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	eventRepo.seed("emp-1", attendance.EventCheckIn, time.Date(2025, 6, 5, 8, 55, 0, 0, time.UTC), attendance.StatusPresent)
	eventRepo.seed("emp-2", attendance.EventCheckIn, time.Date(2025, 6, 5, 9, 40, 0, 0, time.UTC), attendance.StatusLate)
	eventRepo.seed("emp-1", attendance.EventCheckOut, time.Date(2025, 6, 5, 17, 5, 0, 0, time.UTC), attendance.StatusNone)

	svc := newTestService(eventRepo, staff("emp-1", "emp-2", "emp-3", "emp-4"), companyDevices(2), time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))

	resp, err := svc.GetAdminDashboard(claimsContext(t, "admin"), "2025-06-05")

	require.NoError(t, err)
	assert.Equal(t, "2025-06-05", resp.Today.Date)
	assert.Equal(t, 4, resp.Today.TotalEmployees)
	assert.Equal(t, 2, resp.Today.CheckedIn)
	assert.Equal(t, 1, resp.Today.Present)
	assert.Equal(t, 1, resp.Today.Late)
	assert.Equal(t, 2, resp.Today.NotCheckedIn)
	assert.Equal(t, 2, resp.DeviceCount)
	// Check-outs show up in the feed even though they carry no status.
	assert.Len(t, resp.RecentEvents, 3)
	assert.Equal(t, "check_out", resp.RecentEvents[0].Type)
}

func TestDashboardService_GetAdminDashboard_RequiresAdmin(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, staff(), &fakeDeviceRepo{}, time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))

	_, err := svc.GetAdminDashboard(claimsContext(t, "employee"), "2025-06-05")

	assert.ErrorIs(t, err, company.ErrUnauthorized)
}

func TestDashboardService_GetAdminDashboard_RecentFeedCap(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	base := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		eventRepo.seed(fmt.Sprintf("emp-%d", i), attendance.EventCheckIn, base.Add(time.Duration(i)*time.Minute), attendance.StatusPresent)
	}

	svc := newTestService(eventRepo, staff(), &fakeDeviceRepo{}, time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))

	resp, err := svc.GetAdminDashboard(claimsContext(t, "admin"), "2025-06-05")

	require.NoError(t, err)
	assert.Len(t, resp.RecentEvents, 10)
}

func TestDashboardService_GetEmployeeDashboard_MonthToDate(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	eventRepo.seed("emp-1", attendance.EventCheckIn, time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC), attendance.StatusPresent)
	eventRepo.seed("emp-1", attendance.EventCheckOut, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), attendance.StatusNone)
	eventRepo.seed("emp-1", attendance.EventCheckIn, time.Date(2025, 6, 3, 9, 40, 0, 0, time.UTC), attendance.StatusLate)

	// June 10 2025 is a Tuesday: seven working days elapsed so far.
	svc := newTestService(eventRepo, staff("emp-1"), &fakeDeviceRepo{}, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))

	resp, err := svc.GetEmployeeDashboard(employeeContext(t, "emp-1"))

	require.NoError(t, err)
	assert.Equal(t, "2025-06", resp.Summary.Month)
	assert.Equal(t, 7, resp.Summary.WorkingDays)
	assert.Equal(t, 1, resp.Summary.Stats.Present)
	assert.Equal(t, 1, resp.Summary.Stats.Late)
	assert.Equal(t, 5, resp.Summary.Stats.Absent)
	assert.Equal(t, 14, resp.Summary.Rate)
	assert.Equal(t, attendance.StatusLate, resp.Summary.Days["2025-06-03"])
	// Raw feed keeps the check-out, newest first.
	require.Len(t, resp.RecentEvents, 3)
	assert.Equal(t, "check_in", resp.RecentEvents[0].Type)
	assert.Equal(t, "check_out", resp.RecentEvents[1].Type)
}

func TestDashboardService_GetEmployeeDashboard_RequiresEmployee(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, staff(), &fakeDeviceRepo{}, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))

	_, err := svc.GetEmployeeDashboard(claimsContext(t, "admin"))

	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}
