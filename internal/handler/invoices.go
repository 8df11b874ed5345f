package handler

import (
	"net/http"

	"labtrack/internal/apierror"
	"labtrack/internal/dto"
	"labtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

// Create godoc
// @Summary      Issue an invoice
// @Description  Creates an invoice against an approved report and queues PDF rendering. One invoice per report.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateInvoiceRequest true "Invoice details"
// @Success      201  {object} dto.InvoiceResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/invoices [post]
func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
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
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id} [get]
func (h *InvoicesHandler) Get(c *gin.Context) {
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
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "Billing status"
// @Param        report_id query string false "Report UUID"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Records per page (default 50)"
// @Success      200 {object} dto.InvoiceListResponse
// @Router       /v1/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update an invoice
// @Description  Advances billing status (DRAFT, ISSUED, SENT, PAID, CANCELLED). PAID and CANCELLED are terminal.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Invoice UUID"
// @Param        body body dto.UpdateInvoiceRequest true "Fields to update"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/invoices/{id} [patch]
func (h *InvoicesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateInvoiceRequest
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

// MarkPaid godoc
// @Summary      Mark an invoice as paid
// @Description  Moves a SENT invoice to PAID and stamps paid_at.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/invoices/{id}/pay [post]
func (h *InvoicesHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.MarkPaid(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ApprovedReports godoc
// @Summary      Approved reports awaiting invoicing
// @Description  Feeds the invoice-creation dropdown: approved reports without an invoice.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ApprovedReportItem
// @Router       /v1/invoices/approved-reports [get]
func (h *InvoicesHandler) ApprovedReports(c *gin.Context) {
	items, err := h.svc.ApprovedReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list approved reports"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// DownloadPDF godoc
// @Summary      Download the invoice PDF
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/pdf/{id} [get]
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "invoice.pdf")
}
