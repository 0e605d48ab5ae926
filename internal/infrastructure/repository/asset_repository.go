package repository

import (
	"context"
	"errors"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"gorm.io/gorm"
)

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new physical asset repository
func NewAssetRepository(db *gorm.DB) domainRepo.AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) GetByID(ctx context.Context, id uint) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).Preload("Price").First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &asset, err
}

func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) UpdateStatus(ctx context.Context, id uint, status enum.AssetStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Asset{}).
		Where("id = ?", id).
		Update("stato", status).Error
}

func (r *assetRepository) List(ctx context.Context, status enum.AssetStatus, category string) ([]entity.Asset, error) {
	var assets []entity.Asset

	query := r.db.WithContext(ctx).Preload("Price")
	if status != "" {
		query = query.Where("stato = ?", status)
	}
	if category != "" {
		query = query.Where("categoria = ?", category)
	}

	err := query.Order("nome ASC").Find(&assets).Error
	return assets, err
}

type assetPriceRepository struct {
	db *gorm.DB
}

// NewAssetPriceRepository creates a new asset price repository
func NewAssetPriceRepository(db *gorm.DB) domainRepo.AssetPriceRepository {
	return &assetPriceRepository{db: db}
}

func (r *assetPriceRepository) GetByAsset(ctx context.Context, assetID uint) (*entity.AssetPrice, error) {
	var price entity.AssetPrice
	err := r.db.WithContext(ctx).First(&price, "fk_servizio_fisico = ?", assetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}

func (r *assetPriceRepository) Upsert(ctx context.Context, price *entity.AssetPrice) error {
	var existing entity.AssetPrice
	err := r.db.WithContext(ctx).First(&existing, "fk_servizio_fisico = ?", price.AssetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(price).Error
	}
	if err != nil {
		return err
	}

	existing.Price = price.Price
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*price = existing
	return nil
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new prestazione catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) List(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&services).Error
	return services, err
}
