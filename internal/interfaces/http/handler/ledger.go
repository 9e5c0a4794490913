package handler

import (
	appledger "github.com/garage-erp/backend/internal/application/ledger"
	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerHandler exposes payment and current account endpoints
type LedgerHandler struct {
	BaseHandler
	payments     *appledger.PaymentService
	accounts     *appledger.AccountService
	installments *appledger.InstallmentService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(payments *appledger.PaymentService, accounts *appledger.AccountService, installments *appledger.InstallmentService) *LedgerHandler {
	return &LedgerHandler{payments: payments, accounts: accounts, installments: installments}
}

// ApplyPaymentRequest is the POST /payments payload
type ApplyPaymentRequest struct {
	TargetKind     string          `json:"target_kind" binding:"required,oneof=WORK_ORDER ACCOUNT_ENTRY"`
	TargetID       string          `json:"target_id" binding:"required,uuid"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Method         string          `json:"method" binding:"required"`
	Memo           string          `json:"memo"`
	InstallmentNo  *int            `json:"installment_no"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// ApplyPayment handles POST /payments
func (h *LedgerHandler) ApplyPayment(c *gin.Context) {
	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.payments.ApplyPayment(c.Request.Context(), appledger.ApplyPaymentRequest{
		TargetKind:     ledger.TargetKind(req.TargetKind),
		TargetID:       uuid.MustParse(req.TargetID),
		Amount:         req.Amount,
		Method:         ledger.PaymentMethod(req.Method),
		Memo:           req.Memo,
		InstallmentNo:  req.InstallmentNo,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CreateEntryRequest is the POST /account-entries payload
type CreateEntryRequest struct {
	CustomerName      string          `json:"customer_name" binding:"required"`
	CompanyName       string          `json:"company_name"`
	InvoiceAmount     decimal.Decimal `json:"invoice_amount" binding:"required"`
	RecurringCustomer bool            `json:"recurring_customer"`
	Remark            string          `json:"remark"`
}

// CreateEntry handles POST /account-entries
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.accounts.Create(c.Request.Context(), appledger.CreateEntryRequest{
		CustomerName:      req.CustomerName,
		CompanyName:       req.CompanyName,
		InvoiceAmount:     req.InvoiceAmount,
		RecurringCustomer: req.RecurringCustomer,
		Remark:            req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// DeleteEntry handles DELETE /account-entries/:id
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account entry ID")
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InstallmentPlanRequest is the POST /account-entries/:id/installment-plan payload
type InstallmentPlanRequest struct {
	Count int `json:"count" binding:"required,min=2"`
}

// CreateInstallmentPlan handles POST /account-entries/:id/installment-plan
func (h *LedgerHandler) CreateInstallmentPlan(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid account entry ID")
		return
	}
	var req InstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.installments.CreatePlan(c.Request.Context(), uuid.MustParse(idReq.ID), req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// RegisterRoutes wires the payment and current account endpoints into the API group
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.ApplyPayment)

	entries := rg.Group("/account-entries")
	{
		entries.POST("", h.CreateEntry)
		entries.DELETE(":id", h.DeleteEntry)
		entries.POST(":id/installment-plan", h.CreateInstallmentPlan)
	}
}
