package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/auth"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/oauth"
	"github.com/attendancepro/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuthDB *database.DB

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed tests")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "attendance_events", "employees", "users", "companies"}
	for _, table := range tables {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func newTestAuthService() auth.AuthService {
	userRepo := postgresql.NewUserRepository(testAuthDB)
	companyRepo := postgresql.NewCompanyRepository(testAuthDB)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	googleService := oauth.NewGoogleService("client-id", "client-secret", "http://localhost/callback", []string{"email"})
	return NewAuthService(testAuthDB, userRepo, companyRepo, jwtService, jwtRepo, googleService)
}

func createAuthTestCompany(t *testing.T, ctx context.Context) company.Company {
	t.Helper()
	companyRepo := postgresql.NewCompanyRepository(testAuthDB)
	created, err := companyRepo.Create(ctx, company.Company{
		Name:   fmt.Sprintf("Test Company %d", time.Now().UnixNano()),
		Status: company.StatusActive,
		Settings: company.Settings{
			ScheduleStart: "09:00",
			ScheduleEnd:   "17:00",
			GraceMinutes:  15,
			Timezone:      "UTC",
		},
	})
	require.NoError(t, err)
	return created
}

func createAuthTestUser(t *testing.T, ctx context.Context, companyID string, email string) user.User {
	t.Helper()
	userRepo := postgresql.NewUserRepository(testAuthDB)
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hash := string(hashed)

	created, err := userRepo.Create(ctx, user.User{
		CompanyID:    &companyID,
		Email:        email,
		PasswordHash: &hash,
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)
	return created
}

func testSession() auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	comp := createAuthTestCompany(t, ctx)
	testEmail := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, comp.ID, testEmail)

	authService := newTestAuthService()

	response, err := authService.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "password123"}, testSession())

	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Greater(t, response.ExpiresAt, time.Now().Unix())
	assert.Equal(t, comp.ID, response.CompanyID)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	comp := createAuthTestCompany(t, ctx)
	testEmail := fmt.Sprintf("invalidpass-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, comp.ID, testEmail)

	authService := newTestAuthService()

	_, err := authService.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "wrongpassword"}, testSession())

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	authService := newTestAuthService()

	_, err := authService.Login(ctx, auth.LoginRequest{Email: "nonexistent@example.com", Password: "password123"}, testSession())

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_SuspendedCompany(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	comp := createAuthTestCompany(t, ctx)
	testEmail := fmt.Sprintf("suspended-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, comp.ID, testEmail)

	companyRepo := postgresql.NewCompanyRepository(testAuthDB)
	require.NoError(t, companyRepo.SetStatus(ctx, comp.ID, company.StatusSuspended))

	authService := newTestAuthService()

	_, err := authService.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "password123"}, testSession())

	assert.ErrorIs(t, err, auth.ErrCompanySuspended)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	comp := createAuthTestCompany(t, ctx)
	testEmail := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, comp.ID, testEmail)

	authService := newTestAuthService()

	loginResp, err := authService.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "password123"}, testSession())
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.RefreshToken)

	resp, err := authService.Refresh(ctx, loginResp.RefreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	authService := newTestAuthService()

	_, err := authService.Refresh(ctx, "not-a-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	comp := createAuthTestCompany(t, ctx)
	testEmail := fmt.Sprintf("logout-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, comp.ID, testEmail)

	authService := newTestAuthService()

	loginResp, err := authService.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "password123"}, testSession())
	require.NoError(t, err)

	err = authService.Logout(ctx, loginResp.RefreshToken)
	assert.NoError(t, err)

	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	_, revoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, loginResp.RefreshToken)
	assert.NoError(t, err)
	assert.True(t, revoked)

	_, err = authService.Refresh(ctx, loginResp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
