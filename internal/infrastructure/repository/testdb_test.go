package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database gives every pooled connection the same
	// in-memory store while keeping tests isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Member{},
		&entity.FIVMembership{},
		&entity.AccessKey{},
		&entity.Supplier{},
		&entity.Asset{},
		&entity.AssetPrice{},
		&entity.Service{},
		&entity.Assignment{},
		&entity.Delivery{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestMember(t *testing.T, db *gorm.DB, fiscalCode string) *entity.Member {
	t.Helper()
	member := &entity.Member{
		FirstName:      "Mario",
		LastName:       "Rossi",
		FiscalCode:     fiscalCode,
		BirthDate:      date(1980, 5, 12),
		Address:        "Via del Porto 1, Genova",
		Email:          "mario.rossi@example.com",
		Phone:          "3331234567",
		EnrollmentDate: date(2020, 1, 10),
		Status:         enum.MemberStatusActive,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func createTestAsset(t *testing.T, db *gorm.DB, name string, status enum.AssetStatus) *entity.Asset {
	t.Helper()
	asset := &entity.Asset{
		Name:     name,
		Category: "Posto Barca",
		Status:   status,
	}
	require.NoError(t, db.Create(asset).Error)
	return asset
}

func createTestService(t *testing.T, db *gorm.DB, name string, cost int64) *entity.Service {
	t.Helper()
	svc := &entity.Service{
		Name: name,
		Cost: cost,
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func createTestInvoice(t *testing.T, db *gorm.DB, memberID uint, number string, total int64) *entity.Invoice {
	t.Helper()
	issueDate := date(2026, 1, 15)
	invoice := &entity.Invoice{
		Number:        number,
		IssueDate:     issueDate,
		DueDate:       issueDate.AddDate(0, 0, 30),
		MemberID:      &memberID,
		Direction:     enum.InvoiceDirectionReceivable,
		TaxableAmount: total,
		TotalAmount:   total,
		Status:        enum.InvoiceStatusIssued,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}
