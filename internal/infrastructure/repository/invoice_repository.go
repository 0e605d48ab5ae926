package repository

import (
	"context"
	"errors"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "numero_fattura = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uint, status enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("stato", status).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Status != "" {
		query = query.Where("stato = ?", params.Status)
	}
	if params.Direction != "" {
		query = query.Where("tipo_fattura = ?", params.Direction)
	}
	if params.MemberID != nil {
		query = query.Where("fk_associato = ?", *params.MemberID)
	}
	if params.SupplierID != nil {
		query = query.Where("fk_fornitore = ?", *params.SupplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset).Limit(params.Pagination.Limit).
		Order("data_emissione DESC, id DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) CountBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("fk_fornitore = ?", supplierID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) CreateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].InvoiceID = invoice.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		invoice.Lines = lines
		return nil
	})
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// Record inserts the payment and reconciles the invoice status in a single
// transaction. The invoice flips to Pagata only when the re-summed payments
// cover the total; partial payments leave it as issued.
func (r *paymentRepository) Record(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		var paid int64
		if err := tx.Model(&entity.Payment{}).
			Where("fk_fattura = ?", payment.InvoiceID).
			Select("COALESCE(SUM(importo), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}

		var invoice entity.Invoice
		if err := tx.First(&invoice, "id = ?", payment.InvoiceID).Error; err != nil {
			return err
		}

		if paid >= invoice.TotalAmount && invoice.Status != enum.InvoiceStatusPaid {
			if err := tx.Model(&entity.Invoice{}).
				Where("id = ?", invoice.ID).
				Update("stato", enum.InvoiceStatusPaid).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewTransactionFailedError("Registrazione pagamento fallita: " + err.Error())
	}
	return payment, nil
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("fk_fattura = ?", invoiceID).
		Order("data_pagamento ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumByInvoice(ctx context.Context, invoiceID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("fk_fattura = ?", invoiceID).
		Select("COALESCE(SUM(importo), 0)").
		Scan(&total).Error
	return total, err
}
