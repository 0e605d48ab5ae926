package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/pagination"
)

func TestPaymentRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("full payment flips invoice to Pagata", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPaymentRepository(db)
		member := createTestMember(t, db, "PGMTST80A01D969A")
		invoice := createTestInvoice(t, db, member.ID, "SF-1-20260115120000", 50000)

		payment, err := repo.Record(ctx, &entity.Payment{
			InvoiceID:   invoice.ID,
			PaymentDate: date(2026, 2, 1),
			Amount:      50000,
			Method:      "Bonifico",
			Direction:   enum.PaymentDirectionIncoming,
		})
		require.NoError(t, err)
		assert.NotZero(t, payment.ID)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
	})

	t.Run("partial payment leaves invoice issued", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPaymentRepository(db)
		member := createTestMember(t, db, "PGMTST80A01D969B")
		invoice := createTestInvoice(t, db, member.ID, "SF-1-20260115120001", 50000)

		_, err := repo.Record(ctx, &entity.Payment{
			InvoiceID:   invoice.ID,
			PaymentDate: date(2026, 2, 1),
			Amount:      20000,
			Method:      "Contanti",
			Direction:   enum.PaymentDirectionIncoming,
		})
		require.NoError(t, err)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusIssued, reloaded.Status)
	})

	t.Run("cumulative partial payments reaching the total flip the status", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPaymentRepository(db)
		member := createTestMember(t, db, "PGMTST80A01D969C")
		invoice := createTestInvoice(t, db, member.ID, "SF-1-20260115120002", 50000)

		for _, amount := range []int64{20000, 15000, 15000} {
			_, err := repo.Record(ctx, &entity.Payment{
				InvoiceID:   invoice.ID,
				PaymentDate: date(2026, 2, 1),
				Amount:      amount,
				Method:      "POS",
				Direction:   enum.PaymentDirectionIncoming,
			})
			require.NoError(t, err)
		}

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)

		total, err := repo.SumByInvoice(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), total)
	})

	t.Run("overpayment still flips to Pagata", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPaymentRepository(db)
		member := createTestMember(t, db, "PGMTST80A01D969D")
		invoice := createTestInvoice(t, db, member.ID, "SF-1-20260115120003", 50000)

		_, err := repo.Record(ctx, &entity.Payment{
			InvoiceID:   invoice.ID,
			PaymentDate: date(2026, 2, 1),
			Amount:      60000,
			Method:      "Bonifico",
			Direction:   enum.PaymentDirectionIncoming,
		})
		require.NoError(t, err)

		var reloaded entity.Invoice
		require.NoError(t, db.First(&reloaded, invoice.ID).Error)
		assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
	})
}

func TestInvoiceRepositoryList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	member := createTestMember(t, db, "LSTTST80A01D969A")

	createTestInvoice(t, db, member.ID, "SF-1-20260115120010", 10000)
	second := createTestInvoice(t, db, member.ID, "SF-1-20260115120011", 20000)
	require.NoError(t, db.Model(second).Update("stato", enum.InvoiceStatusPaid).Error)

	t.Run("filters by status", func(t *testing.T) {
		invoices, total, err := repo.List(ctx, &domainRepo.InvoiceFilterParams{
			Pagination: pagination.Params{Limit: 10},
			Status:     enum.InvoiceStatusPaid,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, invoices, 1)
		assert.Equal(t, second.ID, invoices[0].ID)
	})

	t.Run("filters by member", func(t *testing.T) {
		memberID := member.ID
		_, total, err := repo.List(ctx, &domainRepo.InvoiceFilterParams{
			Pagination: pagination.Params{Limit: 10},
			MemberID:   &memberID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("counts supplier invoices", func(t *testing.T) {
		supplier := &entity.Supplier{CompanyName: "Cantiere Blu", VATNumber: "01234567890", Email: "info@cantiereblu.it", Phone: "0101234567"}
		require.NoError(t, db.Create(supplier).Error)

		count, err := repo.CountBySupplier(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		issueDate := date(2026, 2, 1)
		require.NoError(t, db.Create(&entity.Invoice{
			Number:      "PASS-2026-001",
			IssueDate:   issueDate,
			DueDate:     issueDate.AddDate(0, 0, 30),
			SupplierID:  &supplier.ID,
			Direction:   enum.InvoiceDirectionPayable,
			TotalAmount: 80000,
			Status:      enum.InvoiceStatusIssued,
		}).Error)

		count, err = repo.CountBySupplier(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestCreateWithLines(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	member := createTestMember(t, db, "CWLTST80A01D969A")

	issueDate := date(2026, 2, 10)
	invoice := &entity.Invoice{
		Number:        "MAN-2026-001",
		IssueDate:     issueDate,
		DueDate:       issueDate.AddDate(0, 0, 30),
		MemberID:      &member.ID,
		Direction:     enum.InvoiceDirectionReceivable,
		TaxableAmount: 30000,
		TotalAmount:   30000,
		Status:        enum.InvoiceStatusIssued,
	}
	lines := []entity.InvoiceLine{
		{Description: "Quota sociale", Quantity: 1, UnitPrice: 20000, LineTotal: 20000},
		{Description: "Diritti di segreteria", Quantity: 2, UnitPrice: 5000, LineTotal: 10000},
	}

	require.NoError(t, repo.CreateWithLines(ctx, invoice, lines))

	stored, err := repo.GetWithDetails(ctx, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Lines, 2)
	for _, l := range stored.Lines {
		assert.Equal(t, invoice.ID, l.InvoiceID)
	}
}
