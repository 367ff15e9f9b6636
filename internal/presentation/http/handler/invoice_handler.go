package handler

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thingylabs/invoice-api/internal/application/service"
	"github.com/thingylabs/invoice-api/internal/presentation/http/dto/response"
	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

// InvoiceHandler handles the invoice form endpoints: drafts, numbering,
// validation, preview and the three export formats
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// bindSnapshot reads the posted form snapshot, keeping the raw body so
// the draft stores exactly what the browser sent.
func bindSnapshot(c *gin.Context) (einvoice.Invoice, string, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return einvoice.Invoice{}, "", false
	}

	var inv einvoice.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		response.BadRequest(c, "Invalid request body")
		return einvoice.Invoice{}, "", false
	}
	return inv, string(raw), true
}

// GetDraft handles retrieving the saved form draft
func (h *InvoiceHandler) GetDraft(c *gin.Context) {
	draft, err := h.invoiceService.GetDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if draft == nil {
		response.NotFound(c, "No draft saved")
		return
	}

	response.OK(c, "Draft retrieved successfully", json.RawMessage(draft.Data))
}

// PutDraft handles saving the form draft
func (h *InvoiceHandler) PutDraft(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(raw) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.invoiceService.SaveDraft(c.Request.Context(), string(raw)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft saved successfully", nil)
}

// DeleteDraft handles clearing the form draft
func (h *InvoiceHandler) DeleteDraft(c *gin.Context) {
	if err := h.invoiceService.DeleteDraft(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// NextNumber handles handing out the next daily invoice number
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	issueDate := time.Now()

	var req struct {
		InvoiceDate string `json:"invoiceDate"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.InvoiceDate != "" {
		if iso := einvoice.NormalizeDate(req.InvoiceDate); iso != "" {
			if t, err := time.Parse("2006-01-02", iso); err == nil {
				issueDate = t
			}
		}
	}

	number, err := h.invoiceService.NextInvoiceNumber(c.Request.Context(), issueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice number generated", gin.H{"invoiceNumber": number})
}

// Validate handles the pre-export validation pass, reporting every
// violation at once
func (h *InvoiceHandler) Validate(c *gin.Context) {
	inv, _, ok := bindSnapshot(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Validate(c.Request.Context(), inv); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice is valid", gin.H{"valid": true})
}

// Preview handles rendering the live preview HTML fragment
func (h *InvoiceHandler) Preview(c *gin.Context) {
	inv, _, ok := bindSnapshot(c)
	if !ok {
		return
	}

	html, err := h.invoiceService.Preview(c.Request.Context(), inv)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "text/html; charset=utf-8", html)
}

// ExportXRechnung handles the XRechnung UBL download
func (h *InvoiceHandler) ExportXRechnung(c *gin.Context) {
	inv, raw, ok := bindSnapshot(c)
	if !ok {
		return
	}

	h.sendExport(c)(h.invoiceService.ExportXRechnung(c.Request.Context(), inv, raw))
}

// ExportZUGFeRD handles the ZUGFeRD CII download
func (h *InvoiceHandler) ExportZUGFeRD(c *gin.Context) {
	inv, raw, ok := bindSnapshot(c)
	if !ok {
		return
	}

	h.sendExport(c)(h.invoiceService.ExportZUGFeRD(c.Request.Context(), inv, raw))
}

// ExportPDF handles the PDF download
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	inv, raw, ok := bindSnapshot(c)
	if !ok {
		return
	}

	h.sendExport(c)(h.invoiceService.ExportPDF(c.Request.Context(), inv, raw))
}

func (h *InvoiceHandler) sendExport(c *gin.Context) func(*service.Export, error) {
	return func(export *service.Export, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Data(200, export.ContentType, export.Data)
	}
}
