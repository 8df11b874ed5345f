package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Staff login
// @Description  Exchanges email + password for an access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credentials"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RefreshRequest true "Refresh token"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InitPhoneOTP godoc
// @Summary      Request an OTP by phone
// @Description  Sends a 6-digit code to the owner's phone for portal access.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.OwnerOTPInitRequest true "Phone number"
// @Success      200  {object} dto.OwnerOTPInitResponse
// @Router       /v1/auth/owner/otp [post]
func (h *AuthHandler) InitPhoneOTP(c *gin.Context) {
	var req dto.OwnerOTPInitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.InitPhoneOTP(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to issue code"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InitEmailOTP godoc
// @Summary      Request an OTP by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.OwnerEmailOTPInitRequest true "Email address"
// @Success      200  {object} dto.OwnerOTPInitResponse
// @Router       /v1/auth/owner/otp/email [post]
func (h *AuthHandler) InitEmailOTP(c *gin.Context) {
	var req dto.OwnerEmailOTPInitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.InitEmailOTP(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to issue code"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPhoneOTP godoc
// @Summary      Verify a phone OTP
// @Description  Consumes the code and issues a short-lived tracking-scoped token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.OwnerOTPVerifyRequest true "Phone and code"
// @Success      200  {object} dto.OwnerTokenResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/owner/otp/verify [post]
func (h *AuthHandler) VerifyPhoneOTP(c *gin.Context) {
	var req dto.OwnerOTPVerifyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerifyPhoneOTP(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyEmailOTP godoc
// @Summary      Verify an email OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.OwnerEmailOTPVerifyRequest true "Email and code"
// @Success      200  {object} dto.OwnerTokenResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/owner/otp/email/verify [post]
func (h *AuthHandler) VerifyEmailOTP(c *gin.Context) {
	var req dto.OwnerEmailOTPVerifyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerifyEmailOTP(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary      Create a staff user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateUserRequest true "User details"
// @Success      201  {object} dto.UserResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListUsers godoc
// @Summary      List staff users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated users"
// @Success      200 {array} dto.UserResponse
// @Router       /v1/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list users"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateUser godoc
// @Summary      Update a staff user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "User UUID"
// @Param        body body dto.UpdateUserRequest true "Fields to update"
// @Success      200 {object} dto.UserResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/users/{id} [patch]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeactivateUser godoc
// @Summary      Deactivate a staff user
// @Tags         users
// @Security     BearerAuth
// @Param        id path string true "User UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/users/{id} [delete]
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeactivateUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactivateUser godoc
// @Summary      Reactivate a staff user
// @Tags         users
// @Security     BearerAuth
// @Param        id path string true "User UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/users/{id}/reactivate [post]
func (h *AuthHandler) ReactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.ReactivateUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
