package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/middleware"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OwnerHandler serves the owner portal: tracking, retest requests and
// notification preferences.
type OwnerHandler struct {
	tracking service.TrackingService
	owner    service.OwnerService
}

func NewOwnerHandler(tracking service.TrackingService, owner service.OwnerService) *OwnerHandler {
	return &OwnerHandler{tracking: tracking, owner: owner}
}

// Track godoc
// @Summary      Track a sample shipment
// @Description  Looks up a shipment by exactly one of awb, receipt, invoice or tracking and returns the progress timeline.
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Param        awb      query string false "Air Waybill number"
// @Param        receipt  query string false "Receipt UUID"
// @Param        invoice  query string false "Invoice number (INV-YYYY-NNNN)"
// @Param        tracking query string false "Tracking number (TRK-...)"
// @Success      200 {object} dto.TrackResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/owner/track [get]
func (h *OwnerHandler) Track(c *gin.Context) {
	var filter dto.TrackFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.tracking.Track(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRetestRequest godoc
// @Summary      File a retest request
// @Description  Lets the owner ask for the test behind a report to be re-run.
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateRetestRequest true "Retest request"
// @Success      201  {object} dto.RetestRequestResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/owner/retest-requests [post]
func (h *OwnerHandler) CreateRetestRequest(c *gin.Context) {
	var req dto.CreateRetestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.owner.CreateRetestRequest(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRetestRequests godoc
// @Summary      List retest requests
// @Description  Owners see their own requests; staff see all.
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RetestRequestResponse
// @Router       /v1/owner/retest-requests [get]
func (h *OwnerHandler) ListRetestRequests(c *gin.Context) {
	claims := middleware.GetClaims(c)
	ownerEmail := ""
	if claims.Role == "owner" {
		ownerEmail = claims.Email
	}
	resp, err := h.owner.ListRetestRequests(c.Request.Context(), ownerEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list retest requests"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RespondRetestRequest godoc
// @Summary      Answer a retest request
// @Description  Staff approves, rejects or completes a pending retest request.
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Retest request UUID"
// @Param        body body dto.RespondRetestRequest true "Decision"
// @Success      200 {object} dto.RetestRequestResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/owner/retest-requests/{id}/respond [post]
func (h *OwnerHandler) RespondRetestRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.RespondRetestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.owner.RespondRetestRequest(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPreference godoc
// @Summary      Get notification preferences
// @Description  Returns the calling owner's channel opt-ins; defaults when never saved.
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.OwnerPreferenceResponse
// @Router       /v1/owner/preferences [get]
func (h *OwnerHandler) GetPreference(c *gin.Context) {
	email := ownerEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Preferences require an email-verified session"))
		return
	}
	resp, err := h.owner.GetPreference(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load preferences"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpsertPreference godoc
// @Summary      Update notification preferences
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpsertOwnerPreferenceRequest true "Channel opt-ins"
// @Success      200 {object} dto.OwnerPreferenceResponse
// @Router       /v1/owner/preferences [put]
func (h *OwnerHandler) UpsertPreference(c *gin.Context) {
	email := ownerEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Preferences require an email-verified session"))
		return
	}
	var req dto.UpsertOwnerPreferenceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.owner.UpsertPreference(c.Request.Context(), email, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ownerEmail returns the email the session was verified against. Phone-only
// OTP sessions have no email and cannot manage preferences.
func ownerEmail(c *gin.Context) string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return ""
	}
	return claims.Email
}
