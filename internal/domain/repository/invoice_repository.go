package repository

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/pkg/pagination"
)

// InvoiceFilterParams represents filtering options for invoice listing
type InvoiceFilterParams struct {
	Pagination pagination.Params
	Status     enum.InvoiceStatus
	Direction  enum.InvoiceDirection
	MemberID   *uint
	SupplierID *uint
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	// GetWithDetails preloads line items and payments
	GetWithDetails(ctx context.Context, id uint) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uint, status enum.InvoiceStatus) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// CountBySupplier returns how many invoices reference the supplier;
	// used to refuse supplier deletion
	CountBySupplier(ctx context.Context, supplierID uint) (int64, error)
	// CreateWithLines inserts an invoice and its line items in one transaction
	CreateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceLine) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Record inserts the payment, re-sums the invoice's payments and flips
	// the invoice to Pagata when the cumulative amount covers the total,
	// all within one transaction
	Record(ctx context.Context, payment *entity.Payment) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uint) ([]entity.Payment, error)
	SumByInvoice(ctx context.Context, invoiceID uint) (int64, error)
}
