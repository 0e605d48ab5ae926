package service

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// AssetService handles the servizi fisici catalog and their prices
type AssetService struct {
	assetRepo repository.AssetRepository
	priceRepo repository.AssetPriceRepository
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repository.AssetRepository, priceRepo repository.AssetPriceRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo, priceRepo: priceRepo}
}

// CreateAssetInput represents the create asset input
type CreateAssetInput struct {
	Name        string   `json:"nome" binding:"required"`
	Description string   `json:"descrizione"`
	Category    string   `json:"categoria" binding:"required"`
	Price       *float64 `json:"prezzo"`
}

// CreateAsset registers a new physical asset, optionally with its yearly fee
func (s *AssetService) CreateAsset(ctx context.Context, input *CreateAssetInput) (*entity.Asset, error) {
	asset := &entity.Asset{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Status:      enum.AssetStatusAvailable,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	if input.Price != nil {
		price := &entity.AssetPrice{
			AssetID: asset.ID,
			Price:   utils.CentsFromFloat(*input.Price),
		}
		if err := s.priceRepo.Upsert(ctx, price); err != nil {
			return nil, err
		}
		asset.Price = price
	}
	return asset, nil
}

// GetAsset retrieves an asset by ID with its price preloaded
func (s *AssetService) GetAsset(ctx context.Context, id uint) (*entity.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Servizio fisico")
	}
	return asset, nil
}

// ListAssets lists assets filtered by status and/or category
func (s *AssetService) ListAssets(ctx context.Context, status, category string) ([]entity.Asset, error) {
	if status != "" && !enum.AssetStatus(status).IsValid() {
		return nil, apperror.NewBadRequestError("Stato servizio fisico non valido")
	}
	return s.assetRepo.List(ctx, enum.AssetStatus(status), category)
}

// UpdateAssetInput represents the update asset input; nil fields are left
// untouched
type UpdateAssetInput struct {
	Name        *string `json:"nome"`
	Description *string `json:"descrizione"`
	Category    *string `json:"categoria"`
	Status      *string `json:"stato"`
}

// UpdateAsset applies a partial update to an asset. Status moves are
// unconstrained here; assignment-driven moves go through billing.
func (s *AssetService) UpdateAsset(ctx context.Context, id uint, input *UpdateAssetInput) (*entity.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Servizio fisico")
	}

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.Status != nil {
		status := enum.AssetStatus(*input.Status)
		if !status.IsValid() {
			return nil, apperror.NewBadRequestError("Stato servizio fisico non valido")
		}
		asset.Status = status
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// SetAssetPriceInput represents the asset price upsert input
type SetAssetPriceInput struct {
	Price float64 `json:"prezzo" binding:"required"`
}

// SetAssetPrice creates or replaces the asset's yearly fee
func (s *AssetService) SetAssetPrice(ctx context.Context, assetID uint, input *SetAssetPriceInput) (*entity.AssetPrice, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Il prezzo non può essere negativo")
	}

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Servizio fisico")
	}

	price := &entity.AssetPrice{
		AssetID: assetID,
		Price:   utils.CentsFromFloat(input.Price),
	}
	if err := s.priceRepo.Upsert(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}
