package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler { return &ReportsHandler{svc: svc} }

// Create godoc
// @Summary      Create a report
// @Description  Opens the findings record for a lab test. One report per lab test.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReportRequest true "Report details"
// @Success      201  {object} dto.ReportResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/reports [post]
func (h *ReportsHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Report UUID"
// @Success      200 {object} dto.ReportResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reports/{id} [get]
func (h *ReportsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        final_status query string false "Approval status"
// @Param        labtest_id   query string false "Lab test UUID"
// @Param        page         query int    false "Page (default 1)"
// @Param        limit        query int    false "Records per page (default 50)"
// @Success      200 {object} dto.ReportListResponse
// @Router       /v1/reports [get]
func (h *ReportsHandler) List(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list reports"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a report
// @Description  Advances final_status and the communication fields. Use the approve action to reach APPROVED.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Report UUID"
// @Param        body body dto.UpdateReportRequest true "Fields to update"
// @Success      200 {object} dto.ReportResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/reports/{id} [patch]
func (h *ReportsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary      Approve a report
// @Description  Sets final_status to APPROVED and records the approver. Only reports in READY_FOR_APPROVAL can be approved.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Report UUID"
// @Param        body body dto.ApproveReportRequest true "Approver"
// @Success      200 {object} dto.ReportResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/reports/{id}/approve [post]
func (h *ReportsHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.ApproveReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
