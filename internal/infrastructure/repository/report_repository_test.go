package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"gorm.io/gorm"
)

func overdueInvoice(t *testing.T, db *gorm.DB, memberID uint, number string, total int64, dueDate time.Time) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		Number:      number,
		IssueDate:   dueDate.AddDate(0, 0, -30),
		DueDate:     dueDate,
		MemberID:    &memberID,
		Direction:   enum.InvoiceDirectionReceivable,
		TotalAmount: total,
		Status:      enum.InvoiceStatusIssued,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func TestDelinquentMembers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("groups overdue invoices per member", func(t *testing.T) {
		db := newTestDB(t)
		repo := &reportRepository{db: db, now: fixedClock(now)}
		moroso := createTestMember(t, db, "MRSTST80A01D969A")
		regolare := createTestMember(t, db, "RGLTST80A01D969B")

		overdueInvoice(t, db, moroso.ID, "SF-1-A", 50000, date(2026, 4, 1))
		overdueInvoice(t, db, moroso.ID, "SF-1-B", 25000, date(2026, 5, 1))
		// Not yet due, must not appear
		overdueInvoice(t, db, regolare.ID, "SF-2-A", 10000, date(2026, 12, 1))
		// Paid, must not appear
		paid := overdueInvoice(t, db, regolare.ID, "SF-2-B", 10000, date(2026, 4, 1))
		require.NoError(t, db.Model(paid).Update("stato", enum.InvoiceStatusPaid).Error)

		report, err := repo.DelinquentMembers(ctx, &domainRepo.DelinquentFilterParams{})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Count)
		assert.InDelta(t, 750.0, report.TotalCredit, 0.001)
		require.Len(t, report.Results, 1)

		entry := report.Results[0]
		assert.Equal(t, moroso.ID, entry.MemberID)
		assert.Len(t, entry.UnpaidInvoices, 2)
		assert.InDelta(t, 750.0, entry.TotalDue, 0.001)
		assert.Equal(t, "Scaduta", entry.UnpaidInvoices[0].Status)
		assert.Positive(t, entry.UnpaidInvoices[0].OverdueDays)
	})

	t.Run("min overdue days filter", func(t *testing.T) {
		db := newTestDB(t)
		repo := &reportRepository{db: db, now: fixedClock(now)}
		member := createTestMember(t, db, "MRSTST80A01D969C")

		overdueInvoice(t, db, member.ID, "SF-3-A", 10000, date(2026, 6, 10)) // 5 days overdue
		overdueInvoice(t, db, member.ID, "SF-3-B", 10000, date(2026, 4, 1))  // 75 days overdue

		report, err := repo.DelinquentMembers(ctx, &domainRepo.DelinquentFilterParams{MinOverdueDays: 30})
		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Len(t, report.Results[0].UnpaidInvoices, 1)
		assert.Equal(t, "SF-3-B", report.Results[0].UnpaidInvoices[0].Number)
	})

	t.Run("suspended members excluded by default", func(t *testing.T) {
		db := newTestDB(t)
		repo := &reportRepository{db: db, now: fixedClock(now)}
		sospeso := createTestMember(t, db, "MRSTST80A01D969D")
		require.NoError(t, db.Model(sospeso).Update("stato_associato", enum.MemberStatusSuspended).Error)
		overdueInvoice(t, db, sospeso.ID, "SF-4-A", 10000, date(2026, 4, 1))

		report, err := repo.DelinquentMembers(ctx, &domainRepo.DelinquentFilterParams{})
		require.NoError(t, err)
		assert.Zero(t, report.Count)

		report, err = repo.DelinquentMembers(ctx, &domainRepo.DelinquentFilterParams{IncludeSuspended: true})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count)
	})
}

func TestFIVReports(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	db := newTestDB(t)
	repo := &reportRepository{db: db, now: fixedClock(now)}

	current := createTestMember(t, db, "FIVTST80A01D969A")
	lapsed := createTestMember(t, db, "FIVTST80A01D969B")
	createTestMember(t, db, "FIVTST80A01D969C") // no card

	require.NoError(t, db.Create(&entity.FIVMembership{
		MemberID:          current.ID,
		CardNumber:        "FIV-100200",
		MembershipExpiry:  date(2026, 12, 31),
		MedicalCertExpiry: date(2026, 7, 1),
	}).Error)
	require.NoError(t, db.Create(&entity.FIVMembership{
		MemberID:          lapsed.ID,
		CardNumber:        "FIV-100201",
		MembershipExpiry:  date(2026, 1, 31),
		MedicalCertExpiry: date(2027, 1, 31),
	}).Error)

	t.Run("all card holders", func(t *testing.T) {
		rows, err := repo.FIVMembers(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("only lapsed cards", func(t *testing.T) {
		expired := true
		rows, err := repo.FIVMembers(ctx, &expired)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, lapsed.ID, rows[0].Member.ID)
	})

	t.Run("certificates expiring within the horizon", func(t *testing.T) {
		rows, err := repo.ExpiringCertificates(ctx, 30)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, current.ID, rows[0].Member.ID)
	})

	t.Run("already expired certificates are not reported as expiring", func(t *testing.T) {
		expiredCert := createTestMember(t, db, "FIVTST80A01D969D")
		require.NoError(t, db.Create(&entity.FIVMembership{
			MemberID:          expiredCert.ID,
			CardNumber:        "FIV-100202",
			MembershipExpiry:  date(2026, 12, 31),
			MedicalCertExpiry: date(2026, 5, 1),
		}).Error)

		rows, err := repo.ExpiringCertificates(ctx, 30)
		require.NoError(t, err)
		for _, row := range rows {
			assert.NotEqual(t, expiredCert.ID, row.Member.ID)
		}
	})
}
