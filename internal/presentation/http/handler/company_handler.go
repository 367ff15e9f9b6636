package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/thingylabs/invoice-api/internal/application/service"
	"github.com/thingylabs/invoice-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles the singleton company profile
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get handles retrieving the company profile
func (h *CompanyHandler) Get(c *gin.Context) {
	profile, err := h.companyService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company profile retrieved successfully", profile)
}

// Put handles saving the company profile
func (h *CompanyHandler) Put(c *gin.Context) {
	var req struct {
		Name                string `json:"name"`
		Address             string `json:"address"`
		Email               string `json:"email"`
		Phone               string `json:"phone"`
		TaxID               string `json:"tax_id"`
		RegNumber           string `json:"reg_number"`
		BankInfo            string `json:"bank_info"`
		Representative      string `json:"representative"`
		Tagline             string `json:"tagline"`
		DefaultPaymentTerms int    `json:"default_payment_terms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.companyService.SaveProfile(c.Request.Context(), &service.SaveProfileInput{
		Name:                req.Name,
		Address:             req.Address,
		Email:               req.Email,
		Phone:               req.Phone,
		TaxID:               req.TaxID,
		RegNumber:           req.RegNumber,
		BankInfo:            req.BankInfo,
		Representative:      req.Representative,
		Tagline:             req.Tagline,
		DefaultPaymentTerms: req.DefaultPaymentTerms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company profile saved successfully", profile)
}
