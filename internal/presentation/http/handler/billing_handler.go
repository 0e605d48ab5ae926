package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/application/service"
	"github.com/umamiasd/umami-api/internal/presentation/http/dto/response"
)

// BillingHandler handles the invoice-generation workflow HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// AssignAsset handles assigning an asset to a member with invoice emission
func (h *BillingHandler) AssignAsset(c *gin.Context) {
	var req service.AssignAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.billingService.AssignAsset(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Assegnazione creata e fattura emessa", result)
}

// DeliverService handles recording a service delivery with invoice emission
func (h *BillingHandler) DeliverService(c *gin.Context) {
	var req service.DeliverServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.billingService.DeliverService(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Erogazione registrata e fattura emessa", result)
}

// TerminateAssignment handles closing an active assignment
func (h *BillingHandler) TerminateAssignment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.billingService.TerminateAssignment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assegnazione terminata", assignment)
}

// ListMemberAssignments handles listing a member's assignments
func (h *BillingHandler) ListMemberAssignments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	assignments, err := h.billingService.ListMemberAssignments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assegnazioni recuperate", assignments)
}

// ListMemberDeliveries handles listing a member's service deliveries
func (h *BillingHandler) ListMemberDeliveries(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	deliveries, err := h.billingService.ListMemberDeliveries(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Erogazioni recuperate", deliveries)
}
