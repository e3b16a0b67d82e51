package handler

import (
	"net/http"

	"tavola/internal/dto"
	"tavola/internal/service"

	"github.com/gin-gonic/gin"
)

type CashierHandler struct{ svc service.PaymentService }

func NewCashierHandler(svc service.PaymentService) *CashierHandler {
	return &CashierHandler{svc: svc}
}

func (h *CashierHandler) Invoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Invoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashierHandler) InvoicePDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, fileName, err := h.svc.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Process godoc
// @Summary Charge an order
// @Description The amount must equal the tax-inclusive order total exactly.
// @Tags cashier
// @Accept json
// @Produce json
// @Param body body dto.ProcessPaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /cashier/payments [post]
func (h *CashierHandler) Process(c *gin.Context) {
	var req dto.ProcessPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Process(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CashierHandler) Refund(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Refund(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashierHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashierHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), p.Skip, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashierHandler) ListByOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListByOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
