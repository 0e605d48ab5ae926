package repository

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// AssetRepository defines the interface for physical asset operations
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id uint) (*entity.Asset, error)
	Update(ctx context.Context, asset *entity.Asset) error
	UpdateStatus(ctx context.Context, id uint, status enum.AssetStatus) error
	// List returns assets filtered by status and/or category, ordered by name
	List(ctx context.Context, status enum.AssetStatus, category string) ([]entity.Asset, error)
}

// AssetPriceRepository defines the interface for asset price operations
type AssetPriceRepository interface {
	// GetByAsset returns the asset's price row, or nil when the asset is uncosted
	GetByAsset(ctx context.Context, assetID uint) (*entity.AssetPrice, error)
	// Upsert creates or replaces the asset's price
	Upsert(ctx context.Context, price *entity.AssetPrice) error
}

// ServiceRepository defines the interface for prestazione catalog operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uint) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	List(ctx context.Context) ([]entity.Service, error)
}
