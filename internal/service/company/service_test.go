package company

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/attendancepro/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCompanyDB *database.DB

func companyTestInit(t *testing.T) {
	t.Helper()
	if testCompanyDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed tests")
	}

	var err error
	testCompanyDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateCompanyTables(t *testing.T, ctx context.Context) {
	_, err := testCompanyDB.Exec(ctx, "TRUNCATE TABLE companies CASCADE")
	if err != nil {
		t.Logf("truncate companies: %v", err)
	}
}

func newTestCompanyService() company.CompanyService {
	return NewCompanyService(testCompanyDB, postgresql.NewCompanyRepository(testCompanyDB))
}

func roleContext(t *testing.T, role string, companyID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", role))
	if companyID != "" {
		require.NoError(t, tok.Set("company_id", companyID))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestCompanyService_Create_Success(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	created, err := svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: uniqueName("Acme")})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "09:00", created.Settings.ScheduleStart)
	assert.Equal(t, "17:00", created.Settings.ScheduleEnd)
	assert.Equal(t, "UTC", created.Settings.Timezone)
}

func TestCompanyService_Create_RequiresSuperAdmin(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	_, err := svc.Create(roleContext(t, "admin", "comp-1"), company.CreateCompanyRequest{Name: uniqueName("Acme")})

	assert.ErrorIs(t, err, company.ErrUnauthorized)
}

func TestCompanyService_Create_DuplicateName(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()
	name := uniqueName("Acme")

	_, err := svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: name})
	require.NoError(t, err)

	_, err = svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: name})
	assert.ErrorIs(t, err, company.ErrNameTaken)
}

func TestCompanyService_UpdateLocation_Success(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	created, err := svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: uniqueName("Acme")})
	require.NoError(t, err)

	adminCtx := roleContext(t, "admin", created.ID)
	err = svc.UpdateLocation(adminCtx, company.UpdateLocationRequest{
		Latitude:     -6.2,
		Longitude:    106.8,
		RadiusMeters: 150,
	})
	require.NoError(t, err)

	mine, err := svc.GetMyCompany(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, -6.2, mine.Settings.Latitude)
	assert.Equal(t, 106.8, mine.Settings.Longitude)
	assert.Equal(t, float64(150), mine.Settings.RadiusMeters)
}

func TestCompanyService_UpdateLocation_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	created, err := svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: uniqueName("Acme")})
	require.NoError(t, err)

	err = svc.UpdateLocation(roleContext(t, "employee", created.ID), company.UpdateLocationRequest{
		Latitude:     -6.2,
		Longitude:    106.8,
		RadiusMeters: 150,
	})
	assert.ErrorIs(t, err, company.ErrUnauthorized)
}

func TestCompanyService_UpdateSchedule_Success(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	created, err := svc.Create(roleContext(t, "super_admin", ""), company.CreateCompanyRequest{Name: uniqueName("Acme")})
	require.NoError(t, err)

	grace := 10
	adminCtx := roleContext(t, "admin", created.ID)
	err = svc.UpdateSchedule(adminCtx, company.UpdateScheduleRequest{
		Start:        "08:30",
		End:          "16:30",
		GraceMinutes: &grace,
	})
	require.NoError(t, err)

	mine, err := svc.GetMyCompany(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, "08:30", mine.Settings.ScheduleStart)
	assert.Equal(t, "16:30", mine.Settings.ScheduleEnd)
	assert.Equal(t, 10, mine.Settings.GraceMinutes)
}

func TestCompanyService_SuspendAndActivate(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()
	superCtx := roleContext(t, "super_admin", "")

	created, err := svc.Create(superCtx, company.CreateCompanyRequest{Name: uniqueName("Acme")})
	require.NoError(t, err)

	require.NoError(t, svc.Suspend(superCtx, created.ID))

	companies, err := svc.List(superCtx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "suspended", companies[0].Status)

	require.NoError(t, svc.Activate(superCtx, created.ID))

	companies, err = svc.List(superCtx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "active", companies[0].Status)
}

func TestCompanyService_Rename_UnknownCompany(t *testing.T) {
	ctx := context.Background()
	companyTestInit(t)
	truncateCompanyTables(t, ctx)

	svc := newTestCompanyService()

	err := svc.Rename(roleContext(t, "super_admin", ""), "00000000-0000-0000-0000-000000000000", company.RenameCompanyRequest{Name: uniqueName("Ghost")})

	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}
