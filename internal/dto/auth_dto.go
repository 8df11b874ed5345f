package dto

// ─── Staff login ─────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Owner OTP ───────────────────────────────────────────────────────────────

type OwnerOTPInitRequest struct {
	Phone string `json:"phone" validate:"required,max=20"`
}

type OwnerEmailOTPInitRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type OwnerOTPInitResponse struct {
	Message          string `json:"message"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type OwnerOTPVerifyRequest struct {
	Phone string `json:"phone" validate:"required,max=20"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type OwnerEmailOTPVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type OwnerTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// ─── User management ─────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=admin lab_staff accounts"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Password string `json:"password"  validate:"omitempty,min=8"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin lab_staff accounts"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}
