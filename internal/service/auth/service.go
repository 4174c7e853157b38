package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendancepro/attendance-backend-go/internal/domain/auth"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/oauth"
	"github.com/attendancepro/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	jwt.Service
	postgresql.JWTRepository
	google oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	companyRepository company.CompanyRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
		google:            googleService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := a.checkCompanyActive(ctx, userData); err != nil {
		return auth.LoginResponse{}, err
	}

	return a.issueTokens(ctx, userData, session)
}

// LoginWithGoogle implements auth.AuthService. Accounts are provisioned by
// admins; an unknown Google identity is rejected, never auto-registered.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	userData, err := a.UserRepository.GetByOAuth(ctx, "google", info.GoogleID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, fmt.Errorf("failed to get user by oauth: %w", err)
		}
		// Fall back to the email so provisioned accounts can link on
		// first Google sign-in.
		userData, err = a.UserRepository.GetByEmail(ctx, info.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return auth.LoginResponse{}, auth.ErrUserNotFound
			}
			return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	if err := a.checkCompanyActive(ctx, userData); err != nil {
		return auth.LoginResponse{}, err
	}

	return a.issueTokens(ctx, userData, session)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	// In-process fast path for sessions revoked since startup; the
	// refresh_tokens table stays authoritative across restarts.
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrUserNotFound
	}

	if err := a.checkCompanyActive(ctx, userData); err != nil {
		return auth.RefreshResponse{}, err
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		_, revoked, err := a.JWTRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !revoked {
			if err := a.JWTRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.Service.RevokeToken(refreshToken)
	return nil
}

// checkCompanyActive rejects logins for users whose company is suspended.
// Platform owners carry no company and always pass.
func (a *AuthServiceImpl) checkCompanyActive(ctx context.Context, userData user.User) error {
	if userData.CompanyID == nil {
		return nil
	}

	comp, err := a.CompanyRepository.GetByID(ctx, *userData.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	if comp.Status == company.StatusSuspended {
		return auth.ErrCompanySuspended
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	var resp auth.LoginResponse

	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		accessToken, accessExpiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.JWTRepository.CreateRefreshToken(txCtx, userData.ID, refreshToken, refreshExpiresAt, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}

		resp = auth.LoginResponse{
			AccessToken:      accessToken,
			TokenType:        "Bearer",
			ExpiresAt:        accessExpiresAt,
			Role:             string(userData.Role),
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExpiresAt,
		}
		if userData.CompanyID != nil {
			resp.CompanyID = *userData.CompanyID
		}
		if userData.EmployeeID != nil {
			resp.EmployeeID = *userData.EmployeeID
		}
		return nil
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return resp, nil
}
