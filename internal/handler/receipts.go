package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReceiptsHandler struct{ svc service.ReceiptService }

func NewReceiptsHandler(svc service.ReceiptService) *ReceiptsHandler { return &ReceiptsHandler{svc: svc} }

// Create godoc
// @Summary      Register a sample receipt
// @Description  Records the intake of a sample shipment. AWB number is mandatory for courier arrivals and branch-to-central forwards.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReceiptRequest true "Receipt details"
// @Success      201  {object} dto.ReceiptResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/receipts [post]
func (h *ReceiptsHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
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
// @Summary      Get a receipt
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Receipt UUID"
// @Success      200 {object} dto.ReceiptResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/receipts/{id} [get]
func (h *ReceiptsHandler) Get(c *gin.Context) {
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
// @Summary      List receipts
// @Description  Returns a paginated list filtered by branch and receiver name.
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Param        branch   query string false "Branch name (substring match)"
// @Param        receiver query string false "Receiver name (substring match)"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Records per page (default 50)"
// @Success      200 {object} dto.ReceiptListResponse
// @Router       /v1/receipts [get]
func (h *ReceiptsHandler) List(c *gin.Context) {
	var filter dto.ReceiptFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list receipts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a receipt
// @Description  Partially updates a receipt; the intake rules are re-checked against the merged record.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Receipt UUID"
// @Param        body body dto.UpdateReceiptRequest true "Fields to update"
// @Success      200 {object} dto.ReceiptResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/receipts/{id} [patch]
func (h *ReceiptsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateReceiptRequest
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

// Delete godoc
// @Summary      Delete a receipt
// @Description  Deletes a receipt and its lab tests (cascade).
// @Tags         receipts
// @Security     BearerAuth
// @Param        id path string true "Receipt UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/receipts/{id} [delete]
func (h *ReceiptsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary      Intake statistics
// @Description  Aggregated receipt counters for the dashboard.
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ReceiptStatsResponse
// @Router       /v1/receipts/stats [get]
func (h *ReceiptsHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute statistics"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
