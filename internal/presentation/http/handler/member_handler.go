package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/application/service"
	"github.com/umamiasd/umami-api/internal/presentation/http/dto/response"
)

// MemberHandler handles member-related HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create handles registering a new member
func (h *MemberHandler) Create(c *gin.Context) {
	var req service.CreateMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Associato creato", member)
}

// Get handles retrieving a member by ID
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Associato recuperato", member)
}

// List handles listing members with filters
func (h *MemberHandler) List(c *gin.Context) {
	input := &service.ListMembersInput{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		Status:     c.Query("stato"),
		HasFIVCard: parseBoolQuery(c, "tesserato_fiv"),
	}

	result, err := h.memberService.ListMembers(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithList(c, 200, "Associati recuperati", result)
}

// Update handles a partial member update
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	var req service.UpdateMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Associato aggiornato", member)
}

// UpsertFIVCard handles creating or replacing the member's federation card
func (h *MemberHandler) UpsertFIVCard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	var req service.UpsertFIVCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.memberService.UpsertFIVCard(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tessera FIV registrata", card)
}

// UpsertAccessKey handles creating or replacing the member's electronic key
func (h *MemberHandler) UpsertAccessKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	var req service.UpsertAccessKeyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	key, err := h.memberService.UpsertAccessKey(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Chiave elettronica registrata", key)
}

// RechargeCredit handles adding shower credit to the member's key
func (h *MemberHandler) RechargeCredit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid member ID")
		return
	}

	var req service.RechargeCreditInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	key, err := h.memberService.RechargeCredit(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credito ricaricato", key)
}
