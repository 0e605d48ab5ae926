package service

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// CatalogService handles the prestazioni catalog
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents the create prestazione input
type CreateServiceInput struct {
	Name        string  `json:"nome" binding:"required"`
	Description string  `json:"descrizione"`
	Cost        float64 `json:"costo"`
}

// CreateService registers a new prestazione. A zero cost is valid and
// produces zero-amount invoices on delivery.
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if input.Cost < 0 {
		return nil, apperror.NewBadRequestError("Il costo non può essere negativo")
	}

	svc := &entity.Service{
		Name:        input.Name,
		Description: input.Description,
		Cost:        utils.CentsFromFloat(input.Cost),
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a prestazione by ID
func (s *CatalogService) GetService(ctx context.Context, id uint) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Prestazione")
	}
	return svc, nil
}

// ListServices lists the prestazioni catalog
func (s *CatalogService) ListServices(ctx context.Context) ([]entity.Service, error) {
	return s.serviceRepo.List(ctx)
}

// UpdateServiceInput represents the update prestazione input; nil fields
// are left untouched
type UpdateServiceInput struct {
	Name        *string  `json:"nome"`
	Description *string  `json:"descrizione"`
	Cost        *float64 `json:"costo"`
}

// UpdateService applies a partial update to a prestazione. Cost changes
// only affect future deliveries; issued invoices keep their amounts.
func (s *CatalogService) UpdateService(ctx context.Context, id uint, input *UpdateServiceInput) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Prestazione")
	}

	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, apperror.NewBadRequestError("Il costo non può essere negativo")
		}
		svc.Cost = utils.CentsFromFloat(*input.Cost)
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
