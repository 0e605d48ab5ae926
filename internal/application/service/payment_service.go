package service

import (
	"context"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// PaymentService handles payment recording and reconciliation against
// invoices
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo, now: time.Now}
}

// RecordPaymentInput represents the payment recording input
type RecordPaymentInput struct {
	InvoiceID   uint    `json:"fk_fattura" binding:"required"`
	Amount      float64 `json:"importo" binding:"required"`
	Method      string  `json:"metodo" binding:"required"`
	PaymentDate string  `json:"data_pagamento"`
}

// RecordPayment registers a payment against an invoice. The movement
// direction is derived from the invoice direction; the invoice flips to
// Pagata when cumulative payments cover the total, in the same
// transaction as the insert. A payment against a Pagata invoice is still
// recorded and leaves the status untouched; only an annulled invoice
// refuses payments.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("L'importo del pagamento deve essere positivo")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Fattura")
	}
	if invoice.Status == enum.InvoiceStatusCancelled {
		return nil, apperror.NewConflictError("La fattura è annullata e non accetta pagamenti")
	}

	paymentDate := s.now().Truncate(24 * time.Hour)
	if input.PaymentDate != "" {
		paymentDate, err = utils.ParseDate(input.PaymentDate)
		if err != nil {
			return nil, apperror.NewBadRequestError("Data di pagamento non valida (atteso formato YYYY-MM-DD)")
		}
	}

	payment := &entity.Payment{
		InvoiceID:   input.InvoiceID,
		PaymentDate: paymentDate,
		Amount:      utils.CentsFromFloat(input.Amount),
		Method:      input.Method,
		Direction:   invoice.Direction.PaymentDirection(),
	}
	return s.paymentRepo.Record(ctx, payment)
}

// ListInvoicePayments lists the payments recorded against an invoice,
// oldest first, together with the outstanding balance.
func (s *PaymentService) ListInvoicePayments(ctx context.Context, invoiceID uint) ([]entity.Payment, float64, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, 0, err
	}
	if invoice == nil {
		return nil, 0, apperror.NewNotFoundError("Fattura")
	}

	payments, err := s.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, 0, err
	}

	paid, err := s.paymentRepo.SumByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, 0, err
	}

	outstanding := invoice.TotalAmount - paid
	if outstanding < 0 {
		outstanding = 0
	}
	return payments, float64(outstanding) / 100, nil
}
