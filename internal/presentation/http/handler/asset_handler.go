package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/application/service"
	"github.com/umamiasd/umami-api/internal/presentation/http/dto/response"
)

// AssetHandler handles physical asset HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create handles registering a new asset
func (h *AssetHandler) Create(c *gin.Context) {
	var req service.CreateAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Servizio fisico creato", asset)
}

// Get handles retrieving an asset by ID
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid asset ID")
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Servizio fisico recuperato", asset)
}

// List handles listing assets with status and category filters
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context(), c.Query("stato"), c.Query("categoria"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Servizi fisici recuperati", assets)
}

// Update handles a partial asset update
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid asset ID")
		return
	}

	var req service.UpdateAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Servizio fisico aggiornato", asset)
}

// SetPrice handles creating or replacing the asset's yearly fee
func (h *AssetHandler) SetPrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid asset ID")
		return
	}

	var req service.SetAssetPriceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	price, err := h.assetService.SetAssetPrice(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prezzo aggiornato", price)
}
