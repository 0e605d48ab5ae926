package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	infraRepo "github.com/umamiasd/umami-api/internal/infrastructure/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"gorm.io/gorm"
)

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(infraRepo.NewPaymentRepository(db), infraRepo.NewInvoiceRepository(db))
}

func seedInvoice(t *testing.T, db *gorm.DB, memberID *uint, supplierID *uint, direction enum.InvoiceDirection, total int64) *entity.Invoice {
	t.Helper()
	issueDate := date(2026, 2, 1)
	invoice := &entity.Invoice{
		Number:      "TEST-" + t.Name(),
		IssueDate:   issueDate,
		DueDate:     issueDate.AddDate(0, 0, 30),
		MemberID:    memberID,
		SupplierID:  supplierID,
		Direction:   direction,
		TotalAmount: total,
		Status:      enum.InvoiceStatusIssued,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func TestPaymentServiceRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("incoming direction for receivable invoices", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		member := seedMember(t, db, "PAYSVC80A01D969A", enum.MemberStatusActive)
		invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 30000)

		payment, err := svc.RecordPayment(ctx, &RecordPaymentInput{
			InvoiceID: invoice.ID,
			Amount:    300,
			Method:    "Bonifico",
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentDirectionIncoming, payment.Direction)
		assert.Equal(t, int64(30000), payment.Amount)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
	})

	t.Run("outgoing direction for payable invoices", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		supplier := &entity.Supplier{CompanyName: "Velerie Nord", VATNumber: "09876543210", Email: "info@velerienord.it", Phone: "0109876543"}
		require.NoError(t, db.Create(supplier).Error)
		invoice := seedInvoice(t, db, nil, &supplier.ID, enum.InvoiceDirectionPayable, 80000)

		payment, err := svc.RecordPayment(ctx, &RecordPaymentInput{
			InvoiceID:   invoice.ID,
			Amount:      800,
			Method:      "Bonifico",
			PaymentDate: "2026-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentDirectionOutgoing, payment.Direction)
		assert.Equal(t, date(2026, 3, 1), payment.PaymentDate)
	})

	t.Run("non positive amount is a 400", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)

		_, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: 1, Amount: 0, Method: "Contanti"})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)

		_, err = svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: 1, Amount: -10, Method: "Contanti"})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("unknown invoice is a 404", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)

		_, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: 999, Amount: 100, Method: "Contanti"})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("cancelled invoice refuses payments", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		member := seedMember(t, db, "PAYSVC80A01D969B", enum.MemberStatusActive)
		invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 30000)
		require.NoError(t, db.Model(invoice).Update("stato", enum.InvoiceStatusCancelled).Error)

		_, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 100, Method: "Contanti"})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("partial payment keeps outstanding balance", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		member := seedMember(t, db, "PAYSVC80A01D969C", enum.MemberStatusActive)
		invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 50000)

		_, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 200, Method: "POS"})
		require.NoError(t, err)

		payments, outstanding, err := svc.ListInvoicePayments(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.InDelta(t, 300.0, outstanding, 0.001)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusIssued, reloaded.Status)
	})

	t.Run("paid invoice still records further payments", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		member := seedMember(t, db, "PAYSVC80A01D969D", enum.MemberStatusActive)
		invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 10000)

		_, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 100, Method: "Bonifico"})
		require.NoError(t, err)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		require.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)

		extra, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 10, Method: "Contanti"})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), extra.Amount)

		payments, outstanding, err := svc.ListInvoicePayments(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Zero(t, outstanding)

		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
	})

	t.Run("defaults the payment date to the service clock", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db)
		svc.now = fixedClock(time.Date(2026, 3, 15, 17, 45, 0, 0, time.UTC))
		member := seedMember(t, db, "PAYSVC80A01D969E", enum.MemberStatusActive)
		invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 30000)

		payment, err := svc.RecordPayment(ctx, &RecordPaymentInput{InvoiceID: invoice.ID, Amount: 300, Method: "POS"})
		require.NoError(t, err)
		assert.Equal(t, date(2026, 3, 15), payment.PaymentDate)
	})
}
