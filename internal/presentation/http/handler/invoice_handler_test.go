package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingylabs/invoice-api/internal/application/service"
	"github.com/thingylabs/invoice-api/internal/domain/entity"
)

type stubDraftRepo struct {
	draft *entity.FormDraft
}

func (s *stubDraftRepo) Get(ctx context.Context) (*entity.FormDraft, error) {
	return s.draft, nil
}

func (s *stubDraftRepo) Save(ctx context.Context, data string) error {
	s.draft = &entity.FormDraft{Data: data}
	return nil
}

func (s *stubDraftRepo) Delete(ctx context.Context) error {
	s.draft = nil
	return nil
}

type stubCompanyRepo struct{}

func (stubCompanyRepo) Get(ctx context.Context) (*entity.CompanyProfile, error) { return nil, nil }
func (stubCompanyRepo) Save(ctx context.Context, profile *entity.CompanyProfile) error {
	return nil
}

type stubSequenceRepo struct {
	n int
}

func (s *stubSequenceRepo) Next(ctx context.Context, datePrefix string) (int, error) {
	s.n++
	return s.n, nil
}

func newTestRouter(drafts *stubDraftRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewInvoiceService(drafts, stubCompanyRepo{}, &stubSequenceRepo{}, false)
	h := NewInvoiceHandler(svc)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/draft", h.GetDraft)
	v1.PUT("/draft", h.PutDraft)
	v1.DELETE("/draft", h.DeleteDraft)
	v1.POST("/invoices/number", h.NextNumber)
	v1.POST("/invoices/validate", h.Validate)
	v1.POST("/invoices/preview", h.Preview)
	v1.POST("/invoices/xrechnung", h.ExportXRechnung)
	return router
}

const validBody = `{
	"invoiceNumber": "250831-001",
	"invoiceDate": "2025-08-31",
	"companyName": "Acme GmbH",
	"companyAddress": "Main St 1\n12345 Berlin",
	"companyTaxId": "DE123456789",
	"clientName": "Client AG",
	"clientAddress": "Side St 2\n54321 Hamburg",
	"lineItems": [{"description": "Consulting", "quantity": 2, "price": 100, "vat": 19}]
}`

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestValidateEndpointReportsViolations(t *testing.T) {
	router := newTestRouter(&stubDraftRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/validate", `{"invoiceNumber":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invoiceNumber")
	assert.Contains(t, w.Body.String(), "clientAddress")
}

func TestValidateEndpointAcceptsCompleteInvoice(t *testing.T) {
	router := newTestRouter(&stubDraftRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/validate", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}

func TestPreviewEndpointReturnsHTML(t *testing.T) {
	router := newTestRouter(&stubDraftRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/preview", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Acme GmbH")
}

func TestNextNumberEndpoint(t *testing.T) {
	router := newTestRouter(&stubDraftRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/number", `{"invoiceDate":"2025-08-31"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invoiceNumber":"250831-001"`)
}

func TestExportEndpointSetsDownloadHeaders(t *testing.T) {
	drafts := &stubDraftRepo{}
	router := newTestRouter(drafts)

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/xrechnung", validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Invoice-250831-001.xml"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "xrechnung_3.0")
	// The export persisted the snapshot as the draft.
	require.NotNil(t, drafts.draft)
}

func TestExportEndpointRejectsInvalidInvoiceButKeepsDraft(t *testing.T) {
	drafts := &stubDraftRepo{}
	router := newTestRouter(drafts)

	w := doRequest(router, http.MethodPost, "/api/v1/invoices/xrechnung", `{"invoiceNumber":"x"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, drafts.draft)
	assert.Equal(t, `{"invoiceNumber":"x"}`, drafts.draft.Data)
}

func TestDraftEndpoints(t *testing.T) {
	router := newTestRouter(&stubDraftRepo{})

	w := doRequest(router, http.MethodGet, "/api/v1/draft", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/draft", `{"invoiceNumber":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/draft", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invoiceNumber":"x"`)

	w = doRequest(router, http.MethodDelete, "/api/v1/draft", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
