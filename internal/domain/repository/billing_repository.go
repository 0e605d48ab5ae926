package repository

import (
	"context"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
)

// AssetAssignmentInput carries the validated, price-resolved data for the
// atomic assignment + invoice creation.
type AssetAssignmentInput struct {
	MemberID   uint
	AssetID    uint
	FiscalYear int
	StartDate  time.Time
	EndDate    time.Time
	// UnitPrice is the resolved yearly fee in cents; zero for uncosted assets
	UnitPrice int64
	// LineDescription is the invoice line text, e.g. "Canone annuale Posto Barca A-01"
	LineDescription string
}

// ServiceDeliveryInput carries the validated, price-resolved data for the
// atomic delivery + invoice creation.
type ServiceDeliveryInput struct {
	MemberID    uint
	ServiceID   uint
	DeliveredAt time.Time
	// UnitPrice is the service's fixed cost in cents; zero for uncosted services
	UnitPrice       int64
	LineDescription string
}

// BillingResult is the outcome of an invoice-generation workflow: the
// created record plus the invoice it was billed on.
type BillingResult struct {
	Assignment *entity.Assignment `json:"assegnazione,omitempty"`
	Delivery   *entity.Delivery   `json:"erogazione,omitempty"`
	Invoice    *entity.Invoice    `json:"fattura"`
}

// BillingRepository owns the transactional invoice-generation workflow.
// Each method runs a single database transaction: either every record
// (assignment/delivery, invoice, line item) is committed or none is.
type BillingRepository interface {
	// CreateAssetAssignment inserts the assignment, flips the asset to
	// Occupato, re-checks for overlapping active assignments under the row
	// lock, and issues the invoice with its single line item.
	// Returns apperror.ErrConflict-kind errors when the overlap re-check
	// fails, and a transaction failure otherwise.
	CreateAssetAssignment(ctx context.Context, in *AssetAssignmentInput) (*BillingResult, error)

	// CreateServiceDelivery inserts the delivery record and issues the
	// invoice with its single line item.
	CreateServiceDelivery(ctx context.Context, in *ServiceDeliveryInput) (*BillingResult, error)
}

// AssignmentRepository defines read/update operations on assignments
type AssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Assignment, error)
	// FindActiveOverlap returns active assignments of the asset whose range
	// intersects [start, end] (inclusive bounds)
	FindActiveOverlap(ctx context.Context, assetID uint, start, end time.Time) ([]entity.Assignment, error)
	ListByMember(ctx context.Context, memberID uint) ([]entity.Assignment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// DeliveryRepository defines read operations on service deliveries
type DeliveryRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Delivery, error)
	ListByMember(ctx context.Context, memberID uint) ([]entity.Delivery, error)
}
