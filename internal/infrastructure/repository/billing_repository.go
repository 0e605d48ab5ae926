package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/utils"
	"gorm.io/gorm"
)

const (
	assignmentInvoicePrefix = "SF"
	deliveryInvoicePrefix   = "EP"

	// invoiceNumberMaxRetries caps the collision-suffix search so a broken
	// uniqueness state cannot loop forever
	invoiceNumberMaxRetries = 50

	invoiceDueDays = 30
)

type billingRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBillingRepository creates the repository owning the transactional
// invoice-generation workflows
func NewBillingRepository(db *gorm.DB) domainRepo.BillingRepository {
	return &billingRepository{db: db, now: time.Now}
}

func (r *billingRepository) CreateAssetAssignment(ctx context.Context, in *domainRepo.AssetAssignmentInput) (*domainRepo.BillingResult, error) {
	result := &domainRepo.BillingResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Writing the asset status first takes the row lock, which
		// serializes concurrent assignment attempts on the same asset.
		// Occupancy conflicts are decided by the date-range check below,
		// so an already occupied asset can still take a disjoint period.
		claim := tx.Model(&entity.Asset{}).
			Where("id = ?", in.AssetID).
			Update("stato", enum.AssetStatusOccupied)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return apperror.NewNotFoundError("Servizio fisico")
		}

		// Re-check under the lock: another transaction may have committed an
		// overlapping assignment between the caller's pre-check and now.
		overlapping, err := findActiveOverlap(tx, in.AssetID, in.StartDate, in.EndDate)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return apperror.NewConflictError("Il servizio fisico ha già un'assegnazione attiva nel periodo richiesto")
		}

		assignment := &entity.Assignment{
			MemberID:   in.MemberID,
			AssetID:    in.AssetID,
			FiscalYear: in.FiscalYear,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Status:     enum.AssignmentStatusActive,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		invoice, err := r.issueInvoice(tx, assignmentInvoicePrefix, in.MemberID, in.UnitPrice)
		if err != nil {
			return err
		}

		line := &entity.InvoiceLine{
			InvoiceID:    invoice.ID,
			Description:  in.LineDescription,
			Quantity:     1,
			UnitPrice:    in.UnitPrice,
			LineTotal:    in.UnitPrice,
			AssignmentID: &assignment.ID,
		}
		if err := tx.Create(line).Error; err != nil {
			return err
		}

		invoice.Lines = []entity.InvoiceLine{*line}
		result.Assignment = assignment
		result.Invoice = invoice
		return nil
	})
	if err != nil {
		return nil, wrapBillingError(err)
	}
	return result, nil
}

func (r *billingRepository) CreateServiceDelivery(ctx context.Context, in *domainRepo.ServiceDeliveryInput) (*domainRepo.BillingResult, error) {
	result := &domainRepo.BillingResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		delivery := &entity.Delivery{
			MemberID:    in.MemberID,
			ServiceID:   in.ServiceID,
			DeliveredAt: in.DeliveredAt,
		}
		if err := tx.Create(delivery).Error; err != nil {
			return err
		}

		invoice, err := r.issueInvoice(tx, deliveryInvoicePrefix, in.MemberID, in.UnitPrice)
		if err != nil {
			return err
		}

		line := &entity.InvoiceLine{
			InvoiceID:   invoice.ID,
			Description: in.LineDescription,
			Quantity:    1,
			UnitPrice:   in.UnitPrice,
			LineTotal:   in.UnitPrice,
			DeliveryID:  &delivery.ID,
		}
		if err := tx.Create(line).Error; err != nil {
			return err
		}

		invoice.Lines = []entity.InvoiceLine{*line}
		result.Delivery = delivery
		result.Invoice = invoice
		return nil
	})
	if err != nil {
		return nil, wrapBillingError(err)
	}
	return result, nil
}

// issueInvoice creates the receivable invoice inside the caller's
// transaction, resolving invoice-number collisions with a bounded suffix
// search.
func (r *billingRepository) issueInvoice(tx *gorm.DB, prefix string, memberID uint, amount int64) (*entity.Invoice, error) {
	number, err := nextInvoiceNumber(tx, prefix, memberID, r.now())
	if err != nil {
		return nil, err
	}

	issueDate := r.now().Truncate(24 * time.Hour)
	invoice := &entity.Invoice{
		Number:        number,
		IssueDate:     issueDate,
		DueDate:       issueDate.AddDate(0, 0, invoiceDueDays),
		MemberID:      &memberID,
		Direction:     enum.InvoiceDirectionReceivable,
		TaxableAmount: amount,
		TaxAmount:     0,
		TotalAmount:   amount,
		Status:        enum.InvoiceStatusIssued,
	}
	if err := tx.Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// nextInvoiceNumber returns the first free invoice number for the
// {prefix}-{memberID}-{timestamp} template, appending -1, -2, ... on
// collisions up to the retry cap.
func nextInvoiceNumber(tx *gorm.DB, prefix string, memberID uint, ts time.Time) (string, error) {
	base := utils.FormatInvoiceNumber(prefix, memberID, ts)

	candidate := base
	for attempt := 0; attempt <= invoiceNumberMaxRetries; attempt++ {
		if attempt > 0 {
			candidate = utils.SuffixInvoiceNumber(base, attempt)
		}
		var count int64
		if err := tx.Model(&entity.Invoice{}).
			Where("numero_fattura = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", apperror.NewTransactionFailedError(
		fmt.Sprintf("Impossibile generare un numero fattura univoco per %s", base))
}

// wrapBillingError preserves application errors raised inside the
// transaction and masks driver errors behind a transaction failure
func wrapBillingError(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewTransactionFailedError("Creazione fattura fallita: " + err.Error())
}
