package service

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/pagination"
)

// SupplierService handles the fornitori registry
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, invoiceRepo repository.InvoiceRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, invoiceRepo: invoiceRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	CompanyName string `json:"ragione_sociale" binding:"required"`
	VATNumber   string `json:"partita_iva" binding:"required,len=11"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"telefono" binding:"required"`
}

// CreateSupplier registers a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		CompanyName: input.CompanyName,
		VATNumber:   input.VATNumber,
		Email:       input.Email,
		Phone:       input.Phone,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uint) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Fornitore")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers with an optional search filter
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.Params, search string) (*pagination.ListResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewListResult(suppliers, total), nil
}

// UpdateSupplierInput represents the update supplier input; nil fields are
// left untouched
type UpdateSupplierInput struct {
	CompanyName *string `json:"ragione_sociale"`
	Email       *string `json:"email"`
	Phone       *string `json:"telefono"`
}

// UpdateSupplier applies a partial update to a supplier. The VAT number is
// immutable registry data.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uint, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Fornitore")
	}

	if input.CompanyName != nil {
		supplier.CompanyName = *input.CompanyName
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier. Suppliers referenced by invoices
// cannot be deleted, to preserve the accounting trail.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uint) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Fornitore")
	}

	count, err := s.invoiceRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Il fornitore ha fatture associate e non può essere eliminato")
	}

	return s.supplierRepo.Delete(ctx, id)
}
