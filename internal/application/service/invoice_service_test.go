package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	infraRepo "github.com/umamiasd/umami-api/internal/infrastructure/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"gorm.io/gorm"
)

func newInvoiceService(db *gorm.DB) *InvoiceService {
	return NewInvoiceService(
		infraRepo.NewInvoiceRepository(db),
		infraRepo.NewMemberRepository(db),
		infraRepo.NewSupplierRepository(db),
	)
}

func seedSupplier(t *testing.T, db *gorm.DB, vat string) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{
		CompanyName: "Cantiere Ligure",
		VATNumber:   vat,
		Email:       "info@cantiereligure.it",
		Phone:       "0101112233",
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestInvoiceServiceCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("passive invoice with lines and tax", func(t *testing.T) {
		db := newTestDB(t)
		svc := newInvoiceService(db)
		supplier := seedSupplier(t, db, "11223344556")

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Number:     "PASS-2026-010",
			IssueDate:  "2026-02-01",
			DueDate:    "2026-03-01",
			Direction:  "Passiva",
			SupplierID: &supplier.ID,
			TaxAmount:  220,
			Lines: []InvoiceLineInput{
				{Description: "Manutenzione gru", Quantity: 2, UnitPrice: 500},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100000), invoice.TaxableAmount)
		assert.Equal(t, int64(22000), invoice.TaxAmount)
		assert.Equal(t, int64(122000), invoice.TotalAmount)
		assert.Len(t, invoice.Lines, 1)
	})

	t.Run("requires exactly one payer", func(t *testing.T) {
		db := newTestDB(t)
		svc := newInvoiceService(db)
		member := seedMember(t, db, "INVSVC80A01D969A", enum.MemberStatusActive)
		supplier := seedSupplier(t, db, "11223344557")

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Number:    "X-1",
			IssueDate: "2026-02-01",
			DueDate:   "2026-03-01",
			Direction: "Attiva",
			Lines:     []InvoiceLineInput{{Description: "Quota", UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)

		_, err = svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Number:     "X-2",
			IssueDate:  "2026-02-01",
			DueDate:    "2026-03-01",
			Direction:  "Attiva",
			MemberID:   &member.ID,
			SupplierID: &supplier.ID,
			Lines:      []InvoiceLineInput{{Description: "Quota", UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("direction must match the payer side", func(t *testing.T) {
		db := newTestDB(t)
		svc := newInvoiceService(db)
		member := seedMember(t, db, "INVSVC80A01D969B", enum.MemberStatusActive)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Number:    "X-3",
			IssueDate: "2026-02-01",
			DueDate:   "2026-03-01",
			Direction: "Passiva",
			MemberID:  &member.ID,
			Lines:     []InvoiceLineInput{{Description: "Quota", UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("duplicate number is a conflict", func(t *testing.T) {
		db := newTestDB(t)
		svc := newInvoiceService(db)
		member := seedMember(t, db, "INVSVC80A01D969C", enum.MemberStatusActive)

		input := &CreateInvoiceInput{
			Number:    "DUP-1",
			IssueDate: "2026-02-01",
			DueDate:   "2026-03-01",
			Direction: "Attiva",
			MemberID:  &member.ID,
			Lines:     []InvoiceLineInput{{Description: "Quota", UnitPrice: 100}},
		}
		_, err := svc.CreateInvoice(ctx, input)
		require.NoError(t, err)

		_, err = svc.CreateInvoice(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})
}

func TestInvoiceServiceCancel(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newInvoiceService(db)
	member := seedMember(t, db, "CNLSVC80A01D969A", enum.MemberStatusActive)

	invoice := seedInvoice(t, db, &member.ID, nil, enum.InvoiceDirectionReceivable, 10000)

	cancelled, err := svc.CancelInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)

	// Terminal states cannot be cancelled again
	_, err = svc.CancelInvoice(ctx, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	paid := &entity.Invoice{
		Number:      "CNL-2",
		IssueDate:   invoice.IssueDate,
		DueDate:     invoice.DueDate,
		MemberID:    &member.ID,
		Direction:   enum.InvoiceDirectionReceivable,
		TotalAmount: 10000,
		Status:      enum.InvoiceStatusPaid,
	}
	require.NoError(t, db.Create(paid).Error)
	_, err = svc.CancelInvoice(ctx, paid.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}
