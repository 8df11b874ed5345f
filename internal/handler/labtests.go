package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabTestsHandler struct{ svc service.LabTestService }

func NewLabTestsHandler(svc service.LabTestService) *LabTestsHandler { return &LabTestsHandler{svc: svc} }

// Create godoc
// @Summary      Create a lab test
// @Description  Opens a lab test against a receipt. The lab document number must be unique within the receipt's branch.
// @Tags         labtests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateLabTestRequest true "Lab test details"
// @Success      201  {object} dto.LabTestResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/labtests [post]
func (h *LabTestsHandler) Create(c *gin.Context) {
	var req dto.CreateLabTestRequest
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
// @Summary      Get a lab test with its transfer history
// @Tags         labtests
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lab test UUID"
// @Success      200 {object} dto.LabTestDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/labtests/{id} [get]
func (h *LabTestsHandler) Get(c *gin.Context) {
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
// @Summary      List lab tests
// @Tags         labtests
// @Produce      json
// @Security     BearerAuth
// @Param        status     query string false "Test status"
// @Param        receipt_id query string false "Receipt UUID"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Records per page (default 50)"
// @Success      200 {object} dto.LabTestListResponse
// @Router       /v1/labtests [get]
func (h *LabTestsHandler) List(c *gin.Context) {
	var filter dto.LabTestFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list lab tests"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a lab test
// @Description  Advances test_status and lab_report_status through their state machines.
// @Tags         labtests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Lab test UUID"
// @Param        body body dto.UpdateLabTestRequest true "Fields to update"
// @Success      200 {object} dto.LabTestResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/labtests/{id} [patch]
func (h *LabTestsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateLabTestRequest
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

// Transfer godoc
// @Summary      Transfer a lab test to another lab person
// @Description  Reassigns the test and appends an immutable audit record. from_user must match the current assignee.
// @Tags         labtests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Lab test UUID"
// @Param        body body dto.TransferLabTestRequest true "Transfer details"
// @Success      201 {object} dto.LabTransferResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/labtests/{id}/transfer [post]
func (h *LabTestsHandler) Transfer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.TransferLabTestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transfer(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
