package service

import (
	"context"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/pagination"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// InvoiceService handles manual invoice entry, retrieval and lifecycle
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	memberRepo   repository.MemberRepository
	supplierRepo repository.SupplierRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	memberRepo repository.MemberRepository,
	supplierRepo repository.SupplierRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		memberRepo:   memberRepo,
		supplierRepo: supplierRepo,
	}
}

// InvoiceLineInput is one line of a manually entered invoice
type InvoiceLineInput struct {
	Description string  `json:"descrizione" binding:"required"`
	Quantity    int     `json:"quantita"`
	UnitPrice   float64 `json:"prezzo_unitario"`
}

// CreateInvoiceInput represents the manual invoice entry input. Exactly
// one of MemberID and SupplierID must be set, matching the direction.
type CreateInvoiceInput struct {
	Number     string             `json:"numero_fattura" binding:"required"`
	IssueDate  string             `json:"data_emissione" binding:"required"`
	DueDate    string             `json:"data_scadenza" binding:"required"`
	Direction  string             `json:"tipo_fattura" binding:"required"`
	MemberID   *uint              `json:"fk_associato"`
	SupplierID *uint              `json:"fk_fornitore"`
	TaxAmount  float64            `json:"iva"`
	Lines      []InvoiceLineInput `json:"dettagli" binding:"required,min=1"`
}

// CreateInvoice records a manually entered invoice with its lines. Used
// for passive (supplier) invoices and for receivables issued outside the
// assignment and delivery workflows.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	direction := enum.InvoiceDirection(input.Direction)
	if direction != enum.InvoiceDirectionReceivable && direction != enum.InvoiceDirectionPayable {
		return nil, apperror.NewBadRequestError("Tipo fattura non valido (atteso Attiva o Passiva)")
	}

	if (input.MemberID == nil) == (input.SupplierID == nil) {
		return nil, apperror.NewBadRequestError("La fattura deve riferirsi a un associato oppure a un fornitore, non entrambi")
	}
	if direction == enum.InvoiceDirectionReceivable && input.MemberID == nil {
		return nil, apperror.NewBadRequestError("Una fattura attiva deve riferirsi a un associato")
	}
	if direction == enum.InvoiceDirectionPayable && input.SupplierID == nil {
		return nil, apperror.NewBadRequestError("Una fattura passiva deve riferirsi a un fornitore")
	}

	if input.MemberID != nil {
		member, err := s.memberRepo.GetByID(ctx, *input.MemberID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, apperror.NewNotFoundError("Associato")
		}
	}
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Fornitore")
		}
	}

	issueDate, err := utils.ParseDate(input.IssueDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Data di emissione non valida (atteso formato YYYY-MM-DD)")
	}
	dueDate, err := utils.ParseDate(input.DueDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Data di scadenza non valida (atteso formato YYYY-MM-DD)")
	}
	if dueDate.Before(issueDate) {
		return nil, apperror.NewBadRequestError("La data di scadenza precede la data di emissione")
	}

	existing, err := s.invoiceRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Esiste già una fattura con questo numero")
	}

	var taxable int64
	lines := make([]entity.InvoiceLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := utils.CentsFromFloat(l.UnitPrice)
		lineTotal := unit * int64(qty)
		taxable += lineTotal
		lines = append(lines, entity.InvoiceLine{
			Description: l.Description,
			Quantity:    qty,
			UnitPrice:   unit,
			LineTotal:   lineTotal,
		})
	}

	tax := utils.CentsFromFloat(input.TaxAmount)
	invoice := &entity.Invoice{
		Number:        input.Number,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		MemberID:      input.MemberID,
		SupplierID:    input.SupplierID,
		Direction:     direction,
		TaxableAmount: taxable,
		TaxAmount:     tax,
		TotalAmount:   taxable + tax,
		Status:        enum.InvoiceStatusIssued,
	}

	if err := s.invoiceRepo.CreateWithLines(ctx, invoice, lines); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice with lines and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Fattura")
	}
	return invoice, nil
}

// ListInvoicesInput represents the invoice listing filters
type ListInvoicesInput struct {
	Pagination pagination.Params
	Status     string
	Direction  string
	MemberID   *uint
	SupplierID *uint
}

// ListInvoices lists invoices with status, direction and payer filters.
// The Scaduta filter matches on stored status; reads report the derived
// status per invoice.
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.ListResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Status:     enum.InvoiceStatus(input.Status),
		Direction:  enum.InvoiceDirection(input.Direction),
		MemberID:   input.MemberID,
		SupplierID: input.SupplierID,
	}
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewListResult(invoices, total), nil
}

// CancelInvoice moves an invoice to Annullata. Paid and already cancelled
// invoices cannot be cancelled.
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Fattura")
	}
	if invoice.Status.IsTerminal() {
		return nil, apperror.NewConflictError("La fattura è in uno stato terminale e non può essere annullata")
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusCancelled); err != nil {
		return nil, err
	}
	invoice.Status = enum.InvoiceStatusCancelled
	invoice.UpdatedAt = time.Now()
	return invoice, nil
}
