package handler

import (
	appledger "github.com/garage-erp/backend/internal/application/ledger"
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/garage-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderHandler exposes work order endpoints
type WorkOrderHandler struct {
	BaseHandler
	workOrders *appledger.WorkOrderService
	promotions *appledger.PromotionService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(workOrders *appledger.WorkOrderService, promotions *appledger.PromotionService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders, promotions: promotions}
}

// LineItemRequest is one line item in a create or update request
type LineItemRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=PART LABOR"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateWorkOrderRequest is the POST /work-orders payload
type CreateWorkOrderRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	VehiclePlate  string            `json:"vehicle_plate"`
	VehicleMake   string            `json:"vehicle_make"`
	VehicleModel  string            `json:"vehicle_model"`
	Items         []LineItemRequest `json:"items"`
	ExplicitTotal *decimal.Decimal  `json:"total_amount"`
	Remark        string            `json:"remark"`
}

// Create handles POST /work-orders
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	wo, err := h.workOrders.Create(c.Request.Context(), appledger.CreateWorkOrderRequest{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		VehiclePlate:  req.VehiclePlate,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		Items:         toLineItemInputs(req.Items),
		ExplicitTotal: req.ExplicitTotal,
		Remark:        req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, wo)
}

// UpdateLineItemsRequest is the PUT /work-orders/:id/line-items payload
type UpdateLineItemsRequest struct {
	Items         []LineItemRequest `json:"items"`
	ExplicitTotal *decimal.Decimal  `json:"total_amount"`
}

// UpdateLineItems handles PUT /work-orders/:id/line-items
func (h *WorkOrderHandler) UpdateLineItems(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}
	var req UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	id := uuid.MustParse(idReq.ID)
	wo, err := h.workOrders.UpdateLineItems(c.Request.Context(), id, toLineItemInputs(req.Items), req.ExplicitTotal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wo)
}

// Delete handles DELETE /work-orders/:id
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	if err := h.workOrders.Delete(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PromoteRequest is the POST /work-orders/:id/promote payload
type PromoteRequest struct {
	CompanyName       string `json:"company_name"`
	RecurringCustomer bool   `json:"recurring_customer"`
	Remark            string `json:"remark"`
}

// Promote handles POST /work-orders/:id/promote
func (h *WorkOrderHandler) Promote(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.promotions.Promote(c.Request.Context(), uuid.MustParse(idReq.ID), appledger.PromoteOverrides{
		CompanyName:       req.CompanyName,
		RecurringCustomer: req.RecurringCustomer,
		Remark:            req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// RegisterRoutes wires the work order endpoints into the API group
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/work-orders")
	{
		orders.POST("", h.Create)
		orders.PUT(":id/line-items", h.UpdateLineItems)
		orders.DELETE(":id", h.Delete)
		orders.POST(":id/promote", h.Promote)
	}
}

func toLineItemInputs(items []LineItemRequest) []appledger.LineItemInput {
	inputs := make([]appledger.LineItemInput, len(items))
	for i, it := range items {
		inputs[i] = appledger.LineItemInput{
			Kind:        workshop.LineItemKind(it.Kind),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return inputs
}
