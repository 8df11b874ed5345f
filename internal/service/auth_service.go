package service

import (
	"context"
	"fmt"
	"time"

	"labtrack/internal/dto"
	"labtrack/internal/infra"
	"labtrack/internal/middleware"
	"labtrack/internal/model"
	"labtrack/internal/repository"
	"labtrack/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const scopeRefresh = "refresh"

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)

	InitPhoneOTP(ctx context.Context, req dto.OwnerOTPInitRequest) (*dto.OwnerOTPInitResponse, error)
	InitEmailOTP(ctx context.Context, req dto.OwnerEmailOTPInitRequest) (*dto.OwnerOTPInitResponse, error)
	VerifyPhoneOTP(ctx context.Context, req dto.OwnerOTPVerifyRequest) (*dto.OwnerTokenResponse, error)
	VerifyEmailOTP(ctx context.Context, req dto.OwnerEmailOTPVerifyRequest) (*dto.OwnerTokenResponse, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	ReactivateUser(ctx context.Context, id uuid.UUID) error
}

// AuthConfig is the slice of runtime configuration the auth service needs.
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	OwnerTokenExpiry   time.Duration
}

type authService struct {
	userRepo   repository.UserRepository
	otp        *infra.OTPStore
	dispatcher *worker.Dispatcher
	cfg        AuthConfig
}

func NewAuthService(userRepo repository.UserRepository, otp *infra.OTPStore, dispatcher *worker.Dispatcher, cfg AuthConfig) AuthService {
	return &authService{userRepo: userRepo, otp: otp, dispatcher: dispatcher, cfg: cfg}
}

// ── Staff login ───────────────────────────────────────────────────────────────

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil || !u.Active {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrUnauthorized
	}
	return s.tokenPair(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.Scope != scopeRefresh {
		return nil, ErrUnauthorized
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil || !u.Active {
		return nil, ErrUnauthorized
	}
	return s.tokenPair(u)
}

func (s *authService) tokenPair(u *model.User) (*dto.LoginResponse, error) {
	now := time.Now().UTC()

	access, err := s.sign(middleware.JWTClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
		},
	})
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(middleware.JWTClaims{
		UserID: u.ID.String(),
		Role:   u.Role,
		Scope:  scopeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenExpiry)),
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.cfg.AccessTokenExpiry.Seconds()),
		User:         *userToResponse(u),
	}, nil
}

func (s *authService) sign(claims middleware.JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── Owner OTP ─────────────────────────────────────────────────────────────────

// InitPhoneOTP generates a code for the phone channel. There is no SMS
// gateway wired in yet, so the code is written to the server log.
// TODO: route through an SMS provider once one is contracted.
func (s *authService) InitPhoneOTP(ctx context.Context, req dto.OwnerOTPInitRequest) (*dto.OwnerOTPInitResponse, error) {
	code, err := infra.GenerateCode()
	if err != nil {
		return nil, err
	}
	if err := s.otp.Store(ctx, "phone:"+req.Phone, code); err != nil {
		return nil, err
	}
	log.Info().Str("phone", req.Phone).Str("code", code).Msg("owner OTP issued")
	return s.otpInitResponse(), nil
}

// InitEmailOTP generates a code and dispatches it through the email queue.
func (s *authService) InitEmailOTP(ctx context.Context, req dto.OwnerEmailOTPInitRequest) (*dto.OwnerOTPInitResponse, error) {
	code, err := infra.GenerateCode()
	if err != nil {
		return nil, err
	}
	if err := s.otp.Store(ctx, "email:"+req.Email, code); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Your sample tracking verification code is %s. It expires in %d minutes.",
		code, int(s.otp.TTL().Minutes()),
	)
	payload := worker.EmailJobPayload{
		ToEmail: req.Email,
		Subject: "Your verification code",
		Body:    body,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		return nil, err
	}
	return s.otpInitResponse(), nil
}

func (s *authService) otpInitResponse() *dto.OwnerOTPInitResponse {
	return &dto.OwnerOTPInitResponse{
		Message:          "Verification code sent",
		ExpiresInMinutes: int(s.otp.TTL().Minutes()),
	}
}

func (s *authService) VerifyPhoneOTP(ctx context.Context, req dto.OwnerOTPVerifyRequest) (*dto.OwnerTokenResponse, error) {
	return s.ownerToken(ctx, "phone:"+req.Phone, req.Code, middleware.JWTClaims{Phone: req.Phone})
}

func (s *authService) VerifyEmailOTP(ctx context.Context, req dto.OwnerEmailOTPVerifyRequest) (*dto.OwnerTokenResponse, error) {
	return s.ownerToken(ctx, "email:"+req.Email, req.Code, middleware.JWTClaims{Email: req.Email})
}

// ownerToken consumes the OTP and issues a short-lived tracking-scoped token.
func (s *authService) ownerToken(ctx context.Context, target, code string, claims middleware.JWTClaims) (*dto.OwnerTokenResponse, error) {
	ok, err := s.otp.Verify(ctx, target, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	now := time.Now().UTC()
	claims.Role = "owner"
	claims.Scope = middleware.ScopeTracking
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.OwnerTokenExpiry)),
	}
	token, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.cfg.OwnerTokenExpiry.Seconds()),
		Scope:       middleware.ScopeTracking,
	}, nil
}

// ── User management ───────────────────────────────────────────────────────────

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing.ID != uuid.Nil {
		return nil, &FieldErrors{Fields: map[string]string{
			"email": "a user with this email already exists",
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return userToResponse(u), nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = *userToResponse(&users[i])
	}
	return out, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return userToResponse(u), nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *authService) ReactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Reactivate(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Active:   u.Active,
	}
}
