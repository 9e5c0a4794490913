package handler

import (
	appprocurement "github.com/garage-erp/backend/internal/application/procurement"
	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcurementHandler exposes supplier, purchase and expense endpoints
type ProcurementHandler struct {
	BaseHandler
	procurement *appprocurement.ProcurementService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(procurement *appprocurement.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurement: procurement}
}

// CreateSupplierRequest is the POST /suppliers payload
type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreateSupplier handles POST /suppliers
func (h *ProcurementHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.procurement.CreateSupplier(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// PurchaseItemRequest is one item in a purchase request
type PurchaseItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// RecordPurchaseRequest is the POST /suppliers/:id/purchases payload
type RecordPurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items" binding:"required,min=1"`
}

// RecordPurchase handles POST /suppliers/:id/purchases
func (h *ProcurementHandler) RecordPurchase(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}
	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inputs := make([]appprocurement.PurchaseItemInput, len(req.Items))
	for i, it := range req.Items {
		inputs[i] = appprocurement.PurchaseItemInput{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}

	purchase, err := h.procurement.RecordPurchase(c.Request.Context(), uuid.MustParse(idReq.ID), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// SupplierPaymentRequest is the POST /suppliers/:id/payments payload
type SupplierPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Memo   string          `json:"memo"`
}

// RecordSupplierPayment handles POST /suppliers/:id/payments
func (h *ProcurementHandler) RecordSupplierPayment(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}
	var req SupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.procurement.RecordSupplierPayment(c.Request.Context(), uuid.MustParse(idReq.ID), req.Amount, ledger.PaymentMethod(req.Method), req.Memo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// RecordExpenseRequest is the POST /expenses payload
type RecordExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	Method      string          `json:"method"`
}

// RecordExpense handles POST /expenses
func (h *ProcurementHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.procurement.RecordExpense(c.Request.Context(), appprocurement.RecordExpenseRequest{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		SupplierID:  req.SupplierID,
		Method:      ledger.PaymentMethod(req.Method),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// DeletePurchase handles DELETE /purchases/:id
func (h *ProcurementHandler) DeletePurchase(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.procurement.DeletePurchase(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes wires the supplier side endpoints into the API group
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.POST(":id/purchases", h.RecordPurchase)
		suppliers.POST(":id/payments", h.RecordSupplierPayment)
	}

	rg.POST("/expenses", h.RecordExpense)
	rg.DELETE("/purchases/:id", h.DeletePurchase)
}
